package moderation

import "regexp"

// The pattern libraries are immutable, compiled once at process start, and
// shared read-only across all scoring calls. They are process-wide
// configuration, not mutable state.

// pattern pairs a compiled expression with the canonical label reported as
// matched-phrase evidence.
type pattern struct {
	label string
	re    *regexp.Regexp
}

// keywords builds case-insensitive word-boundary patterns from literal
// phrases. The phrase itself doubles as the evidence label.
func keywords(phrases ...string) []pattern {
	out := make([]pattern, 0, len(phrases))
	for _, p := range phrases {
		out = append(out, pattern{
			label: p,
			re:    regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`),
		})
	}
	return out
}

// expr builds a single case-insensitive pattern from a regular expression
// fragment, reported under the given label.
func expr(label, expression string) pattern {
	return pattern{label: label, re: regexp.MustCompile(`(?i)` + expression)}
}

// luxuryPatterns flags brand names and premium goods that rarely belong in a
// donation budget.
var luxuryPatterns = append(keywords(
	"mercedes benz", "mercedes", "bmw", "lamborghini", "ferrari", "porsche",
	"bentley", "maserati", "range rover", "s-class",
	"rolex", "cartier", "gucci", "louis vuitton", "prada", "chanel",
	"hermes", "versace", "tiffany",
	"private jet", "yacht", "penthouse", "jet ski",
	"designer handbag", "designer shoes", "designer clothes",
	"first class ticket", "luxury vacation", "luxury car",
),
	expr("diamond jewelry", `\bdiamonds?\b`),
)

// inappropriateSevere and inappropriateMild form a two-tier blocklist;
// severe matches weigh far more than casual profanity.
var (
	inappropriateSevere = keywords(
		"fuck", "cunt", "porn", "nude photos", "explicit content",
		"kill yourself",
	)
	inappropriateMild = keywords(
		"shit", "bitch", "damn", "asshole", "bastard",
	)
)

// fraudSevere captures hard scam phrasing; fraudMild captures the softer
// pressure-tactic vocabulary that accompanies it.
var (
	fraudSevere = []pattern{
		expr("guaranteed returns", `\bguaranteed\s+returns?\b`),
		expr("double your money", `\b(?:double|triple)\s+your\s+money\b`),
		expr("wire transfer", `\bwire\s+transfer\b`),
		expr("western union", `\bwestern\s+union\b`),
		expr("send money fast", `\bsend\s+(?:me\s+)?money\s+(?:fast|now|immediately)\b`),
		expr("get rich quick", `\bget\s+rich\s+quick\b`),
		expr("100% guaranteed", `\b100%\s+guaranteed\b`),
		expr("risk-free investment", `\brisk[- ]free\s+invest(?:ment|ing)\b`),
	}
	fraudMild = []pattern{
		expr("quick money", `\b(?:quick|easy|fast)\s+(?:money|cash)\b`),
		expr("investment opportunity", `\binvestment\s+opportunit(?:y|ies)\b`),
		expr("limited time offer", `\blimited\s+time\b`),
		expr("act now", `\bact\s+now\b`),
		expr("once in a lifetime", `\bonce[- ]in[- ]a[- ]lifetime\b`),
		expr("processing fee", `\bprocessing\s+fee\b`),
		expr("don't miss out", `\bdon'?t\s+miss\s+out\b`),
	}
)

// needIndicators lists the substantiating vocabulary expected for each
// declared need type. Presence raises credibility; it is a positive signal,
// not a risk score.
var needIndicators = map[NeedType][]pattern{
	NeedMedical: keywords(
		"hospital", "doctor", "physician", "surgeon", "oncologist",
		"surgery", "diagnosis", "diagnosed", "treatment", "chemotherapy",
		"medication", "prescription", "clinic", "therapy", "icu",
		"medical bills",
	),
	NeedEducation: keywords(
		"school", "tuition", "university", "college", "semester",
		"textbooks", "scholarship", "degree", "enrollment", "classroom",
		"student", "school fees",
	),
	NeedEmergency: keywords(
		"fire", "flood", "earthquake", "hurricane", "storm", "accident",
		"disaster", "displaced", "evacuated", "insurance claim",
		"emergency repair", "lost everything",
	),
	NeedCommunity: keywords(
		"community", "neighborhood", "volunteer", "volunteers", "shelter",
		"food bank", "nonprofit", "charity", "playground",
		"community center", "local families",
	),
	NeedPersonal: keywords(
		"rent", "eviction", "utilities", "groceries", "unemployed",
		"laid off", "job loss", "childcare", "bills",
	),
	NeedOther: keywords(
		"family", "support", "neighbor",
	),
}

// trustPatterns captures transparency and credibility commitments.
var trustPatterns = []pattern{
	expr("receipts", `\breceipts?\b`),
	expr("updates", `\b(?:regular|weekly|monthly|progress)\s+updates?\b`),
	expr("documentation", `\bdocument(?:s|ed|ation)\b`),
	expr("invoices", `\binvoices?\b`),
	expr("bank statement", `\bbank\s+statements?\b`),
	expr("verified", `\bverif(?:y|ied|iable)\b`),
	expr("transparency", `\btransparen(?:t|cy)\b`),
	expr("accountability", `\baccountab(?:le|ility)\b`),
	expr("references", `\breferences\b`),
	expr("every dollar", `\bevery\s+(?:dollar|cent|donation)\b`),
	expr("treatment plan", `\b(?:treatment|payment|spending)\s+plan\b`),
}

// matchAll returns the labels of all patterns that match text, in library
// order. Deterministic ordering keeps results reproducible for equal input.
func matchAll(patterns []pattern, text string) []string {
	var matched []string
	for _, p := range patterns {
		if p.re.MatchString(text) {
			matched = append(matched, p.label)
		}
	}
	return matched
}
