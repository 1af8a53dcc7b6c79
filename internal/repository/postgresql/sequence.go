package postgresql

import (
	"context"
	"fmt"

	"github.com/palmhr/attendance-backend-go/internal/domain/sequence"
	"github.com/palmhr/attendance-backend-go/internal/pkg/database"
)

type sequenceRepository struct {
	db *database.DB
}

func NewSequenceRepository(db *database.DB) sequence.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next implements sequence.SequenceRepository. The upsert-and-increment is a
// single statement, so concurrent registrations for the same organization
// serialize on that organization's row only; other organizations never block.
func (r *sequenceRepository) Next(ctx context.Context, organizationCode string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO organization_sequences (organization_code, last_value, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (organization_code) DO UPDATE
		SET last_value = organization_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value
	`

	var next int64
	if err := q.QueryRow(ctx, query, organizationCode).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to advance sequence for %s: %w", organizationCode, err)
	}

	return next, nil
}
