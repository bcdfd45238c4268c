package handler

import (
	"time"

	"fundguard/internal/moderation"
	"fundguard/internal/moderation/history"
)

// EvaluateResponse is the HTTP response for POST /moderation/evaluate.
type EvaluateResponse struct {
	Scores          moderation.Scores       `json:"scores"`
	Decision        string                  `json:"decision"`
	Flags           []string                `json:"flags"`
	Recommendations []string                `json:"recommendations"`
	Details         moderation.MatchDetails `json:"details"`
	ProcessingTime  int64                   `json:"processingTime"`
	Timestamp       time.Time               `json:"timestamp"`
}

// FromResult converts an engine result to an HTTP response.
func FromResult(result *moderation.ScoreResult) *EvaluateResponse {
	return &EvaluateResponse{
		Scores:          result.Scores,
		Decision:        string(result.Decision),
		Flags:           result.Flags,
		Recommendations: result.Recommendations,
		Details:         result.Details,
		ProcessingTime:  result.ProcessingTime,
		Timestamp:       result.Timestamp,
	}
}

// StatsResponse is the HTTP response for GET /moderation/stats.
type StatsResponse struct {
	TotalEvaluations    int            `json:"total_evaluations"`
	Decisions           map[string]int `json:"decisions"`
	AverageOverall      float64        `json:"average_overall"`
	AverageProcessingMs float64        `json:"average_processing_ms"`
}

// FromStats converts history stats to an HTTP response.
func FromStats(stats history.Stats) *StatsResponse {
	decisions := make(map[string]int, len(stats.Decisions))
	for d, n := range stats.Decisions {
		decisions[string(d)] = n
	}
	return &StatsResponse{
		TotalEvaluations:    stats.TotalEvaluations,
		Decisions:           decisions,
		AverageOverall:      stats.AverageOverall,
		AverageProcessingMs: stats.AverageProcessingMs,
	}
}
