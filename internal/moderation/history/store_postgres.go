package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"fundguard/internal/moderation"
	id "fundguard/pkg/domain"
)

// PostgresStore persists moderation records in PostgreSQL. The full
// ScoreResult is stored as JSONB so the review UI can render score
// breakdowns without schema churn when the result shape grows.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, record Record) error {
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return fmt.Errorf("marshal moderation result: %w", err)
	}

	var reviewedBy any
	if !record.ReviewedBy.IsNil() {
		reviewedBy = uuid.UUID(record.ReviewedBy)
	}

	query := `
		INSERT INTO moderation_history (id, campaign_id, origin, reviewed_by, note, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		record.ID,
		uuid.UUID(record.CampaignID),
		string(record.Origin),
		reviewedBy,
		record.Note,
		payload,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert moderation history: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCampaign(ctx context.Context, campaignID id.CampaignID) ([]Record, error) {
	query := `
		SELECT id, campaign_id, origin, reviewed_by, note, result, created_at
		FROM moderation_history
		WHERE campaign_id = $1
		ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(campaignID))
	if err != nil {
		return nil, fmt.Errorf("list moderation history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			record     Record
			rawID      uuid.UUID
			rawCID     uuid.UUID
			reviewedBy uuid.NullUUID
			payload    []byte
		)
		if err := rows.Scan(&rawID, &rawCID, (*string)(&record.Origin), &reviewedBy, &record.Note, &payload, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan moderation history: %w", err)
		}
		record.ID = rawID
		record.CampaignID = id.CampaignID(rawCID)
		if reviewedBy.Valid {
			record.ReviewedBy = id.UserID(reviewedBy.UUID)
		}
		if err := json.Unmarshal(payload, &record.Result); err != nil {
			return nil, fmt.Errorf("unmarshal moderation result: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *PostgresStore) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Decisions: make(map[moderation.Decision]int)}

	query := `
		SELECT result->>'decision',
		       COUNT(*),
		       AVG((result->'scores'->>'overall')::numeric),
		       AVG((result->>'processingTime')::numeric)
		FROM moderation_history
		WHERE origin = $1
		GROUP BY result->>'decision'
	`
	rows, err := s.db.QueryContext(ctx, query, string(OriginAutomated))
	if err != nil {
		return Stats{}, fmt.Errorf("query moderation stats: %w", err)
	}
	defer rows.Close()

	var overallWeighted, processingWeighted float64
	for rows.Next() {
		var (
			decision      string
			count         int
			avgOverall    float64
			avgProcessing float64
		)
		if err := rows.Scan(&decision, &count, &avgOverall, &avgProcessing); err != nil {
			return Stats{}, fmt.Errorf("scan moderation stats: %w", err)
		}
		stats.Decisions[moderation.Decision(decision)] = count
		stats.TotalEvaluations += count
		overallWeighted += avgOverall * float64(count)
		processingWeighted += avgProcessing * float64(count)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}
	if stats.TotalEvaluations > 0 {
		stats.AverageOverall = overallWeighted / float64(stats.TotalEvaluations)
		stats.AverageProcessingMs = processingWeighted / float64(stats.TotalEvaluations)
	}
	return stats, nil
}
