package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundguard/internal/moderation"
	id "fundguard/pkg/domain"
	"fundguard/pkg/platform/sentinel"
)

func testCampaign() *Campaign {
	return &Campaign{
		ID:         id.NewCampaignID(),
		OwnerID:    id.UserID(uuid.New()),
		Title:      "Rent help",
		Story:      "Behind on rent after losing my job.",
		NeedType:   moderation.NeedPersonal,
		GoalAmount: 1200,
		Status:     StatusPendingModeration,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

func TestInMemoryStoreCreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	c := testCampaign()

	require.NoError(t, store.Create(ctx, c))

	found, err := store.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Title, found.Title)
	assert.Equal(t, c.Status, found.Status)
}

func TestInMemoryStoreDuplicateCreate(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	c := testCampaign()

	require.NoError(t, store.Create(ctx, c))
	err := store.Create(ctx, c)
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}

func TestInMemoryStoreFindUnknown(t *testing.T) {
	store := NewInMemoryStore()
	_, err := store.FindByID(context.Background(), id.NewCampaignID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStoreUpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	c := testCampaign()
	require.NoError(t, store.Create(ctx, c))

	updatedAt := time.Now().Add(time.Minute)
	require.NoError(t, store.UpdateStatus(ctx, c.ID, StatusApproved, updatedAt))

	found, err := store.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, found.Status)
	assert.Equal(t, updatedAt, found.UpdatedAt)
}

func TestInMemoryStoreUpdateStatusUnknown(t *testing.T) {
	store := NewInMemoryStore()
	err := store.UpdateStatus(context.Background(), id.NewCampaignID(), StatusApproved, time.Now())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	c := testCampaign()
	require.NoError(t, store.Create(ctx, c))

	found, err := store.FindByID(ctx, c.ID)
	require.NoError(t, err)
	found.Title = "mutated"

	again, err := store.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Title, again.Title)
}

func TestStatusForDecision(t *testing.T) {
	assert.Equal(t, StatusApproved, StatusForDecision(moderation.DecisionApproved))
	assert.Equal(t, StatusUnderReview, StatusForDecision(moderation.DecisionReview))
	assert.Equal(t, StatusRejected, StatusForDecision(moderation.DecisionRejected))
	assert.Equal(t, StatusPendingModeration, StatusForDecision(moderation.Decision("unknown")))
}
