package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/domain"
)

type cartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB, logger *zap.Logger) *cartRepository {
	return &cartRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cartRepository) GetByShopper(ctx context.Context, shopperID uuid.UUID) ([]domain.CartLine, error) {
	query := `
		SELECT lines
		FROM carts
		WHERE shopper_id = $1
	`

	var linesJSON []byte
	err := r.db.QueryRowContext(ctx, query, shopperID).Scan(&linesJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("Failed to get cart", zap.Error(err))
		return nil, err
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(linesJSON, &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart lines: %w", err)
	}

	return lines, nil
}

func (r *cartRepository) Save(ctx context.Context, shopperID uuid.UUID, lines []domain.CartLine) error {
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart lines: %w", err)
	}

	query := `
		INSERT INTO carts (shopper_id, lines, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (shopper_id) DO UPDATE SET lines = $2, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, shopperID, linesJSON); err != nil {
		r.logger.Error("Failed to save cart", zap.Error(err))
		return err
	}

	return nil
}

// ClearByShopper deletes the shopper's cart. Clearing an already-empty cart
// is not an error.
func (r *cartRepository) ClearByShopper(ctx context.Context, shopperID uuid.UUID) error {
	query := `
		DELETE FROM carts
		WHERE shopper_id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, shopperID); err != nil {
		r.logger.Error("Failed to clear cart", zap.Error(err))
		return err
	}

	return nil
}
