package history

import (
	"context"
	"sort"
	"sync"

	"fundguard/internal/moderation"
	id "fundguard/pkg/domain"
)

// InMemoryStore keeps moderation records in process memory. Used in tests
// and deployments without PostgreSQL configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[id.CampaignID][]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[id.CampaignID][]Record)}
}

func (s *InMemoryStore) Append(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.CampaignID] = append(s.records[record.CampaignID], record)
	return nil
}

func (s *InMemoryStore) ListByCampaign(_ context.Context, campaignID id.CampaignID) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := append([]Record{}, s.records[campaignID]...)
	// Newest first, matching the Postgres store's ordering.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *InMemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Decisions: make(map[moderation.Decision]int)}
	var overallSum float64
	var processingSum int64
	for _, records := range s.records {
		for _, r := range records {
			// Manual override records carry no engine scores and would
			// skew the averages.
			if r.Origin != OriginAutomated {
				continue
			}
			stats.TotalEvaluations++
			stats.Decisions[r.Result.Decision]++
			overallSum += float64(r.Result.Scores.Overall)
			processingSum += r.Result.ProcessingTime
		}
	}
	if stats.TotalEvaluations > 0 {
		stats.AverageOverall = overallSum / float64(stats.TotalEvaluations)
		stats.AverageProcessingMs = float64(processingSum) / float64(stats.TotalEvaluations)
	}
	return stats, nil
}
