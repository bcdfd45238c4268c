package campaign

import (
	"context"
	"sync"
	"time"

	id "fundguard/pkg/domain"
	"fundguard/pkg/platform/sentinel"
)

// InMemoryStore keeps campaigns in process memory for tests and deployments
// without PostgreSQL configured.
type InMemoryStore struct {
	mu        sync.RWMutex
	campaigns map[id.CampaignID]*Campaign
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{campaigns: make(map[id.CampaignID]*Campaign)}
}

func (s *InMemoryStore) Create(_ context.Context, c *Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.campaigns[c.ID]; exists {
		return sentinel.ErrConflict
	}
	clone := *c
	s.campaigns[c.ID] = &clone
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, campaignID id.CampaignID) (*Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[campaignID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, campaignID id.CampaignID, status Status, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.campaigns[campaignID]
	if !ok {
		return sentinel.ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = updatedAt
	return nil
}
