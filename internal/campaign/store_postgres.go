package campaign

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fundguard/internal/moderation"
	id "fundguard/pkg/domain"
	"fundguard/pkg/platform/sentinel"
)

// PostgresStore persists campaigns in PostgreSQL. The budget breakdown is
// stored as JSONB; line items are read back whole for re-moderation, never
// queried individually.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c *Campaign) error {
	budget, err := json.Marshal(c.Budget)
	if err != nil {
		return fmt.Errorf("marshal budget breakdown: %w", err)
	}

	query := `
		INSERT INTO campaigns (id, owner_id, title, story, need_type, goal_amount, budget, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(c.ID),
		uuid.UUID(c.OwnerID),
		c.Title,
		c.Story,
		string(c.NeedType),
		c.GoalAmount,
		budget,
		string(c.Status),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, campaignID id.CampaignID) (*Campaign, error) {
	query := `
		SELECT id, owner_id, title, story, need_type, goal_amount, budget, status, created_at, updated_at
		FROM campaigns
		WHERE id = $1
	`
	var (
		c       Campaign
		rawID   uuid.UUID
		ownerID uuid.UUID
		budget  []byte
	)
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(campaignID)).Scan(
		&rawID,
		&ownerID,
		&c.Title,
		&c.Story,
		(*string)(&c.NeedType),
		&c.GoalAmount,
		&budget,
		(*string)(&c.Status),
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find campaign: %w", err)
	}
	c.ID = id.CampaignID(rawID)
	c.OwnerID = id.UserID(ownerID)
	if len(budget) > 0 {
		if err := json.Unmarshal(budget, &c.Budget); err != nil {
			return nil, fmt.Errorf("unmarshal budget breakdown: %w", err)
		}
	}
	if c.Budget == nil {
		c.Budget = []moderation.BudgetLine{}
	}
	return &c, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, campaignID id.CampaignID, status Status, updatedAt time.Time) error {
	query := `
		UPDATE campaigns
		SET status = $2, updated_at = $3
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, uuid.UUID(campaignID), string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
