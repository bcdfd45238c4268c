package audit

import (
	"context"
	"sync"

	"fundguard/pkg/domain"
)

// Store is append-only. Implementations must tolerate concurrent appends.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByCampaign(ctx context.Context, campaignID domain.CampaignID) ([]Event, error)
}

// InMemoryStore keeps events in memory for development and tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *InMemoryStore) ListByCampaign(_ context.Context, campaignID domain.CampaignID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Event
	for _, e := range s.events {
		if e.CampaignID == campaignID {
			out = append(out, e)
		}
	}
	return out, nil
}
