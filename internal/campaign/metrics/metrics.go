package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the campaign workflow.
type Metrics struct {
	// Campaigns created by final moderation status
	CampaignsCreated *prometheus.CounterVec

	// Manual reviewer overrides by resulting decision
	Overrides *prometheus.CounterVec

	// Re-evaluations triggered after the initial moderation
	Reevaluations prometheus.Counter

	// Moderation runs skipped because another run held the lock
	LockContention prometheus.Counter
}

// New creates a Metrics instance with all campaign metrics registered.
func New() *Metrics {
	return &Metrics{
		CampaignsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fundguard_campaigns_created_total",
			Help: "Campaigns created by resulting status",
		}, []string{"status"}),

		Overrides: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fundguard_campaign_overrides_total",
			Help: "Manual reviewer overrides by resulting decision",
		}, []string{"decision"}),

		Reevaluations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundguard_campaign_reevaluations_total",
			Help: "Moderation re-evaluations of existing campaigns",
		}),

		LockContention: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fundguard_campaign_lock_contention_total",
			Help: "Moderation runs refused because the campaign was locked",
		}),
	}
}

// IncrementCreated records a campaign creation and its resulting status.
func (m *Metrics) IncrementCreated(status string) {
	if m != nil {
		m.CampaignsCreated.WithLabelValues(status).Inc()
	}
}

// IncrementOverride records a manual override.
func (m *Metrics) IncrementOverride(decision string) {
	if m != nil {
		m.Overrides.WithLabelValues(decision).Inc()
	}
}

// IncrementReevaluation records a triggered re-evaluation.
func (m *Metrics) IncrementReevaluation() {
	if m != nil {
		m.Reevaluations.Inc()
	}
}

// IncrementLockContention records a refused run due to a held lock.
func (m *Metrics) IncrementLockContention() {
	if m != nil {
		m.LockContention.Inc()
	}
}
