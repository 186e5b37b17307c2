package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/pkg/errors"
)

type shopperRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewShopperRepository creates a new shopper repository
func NewShopperRepository(db *sql.DB, logger *zap.Logger) *shopperRepository {
	return &shopperRepository{
		db:     db,
		logger: logger,
	}
}

const shopperColumns = `id, name, phone, email, district, upazila, address, city, postal_code, country, token_hash, is_active, created_at, updated_at`

func (r *shopperRepository) GetByToken(ctx context.Context, token string) (*domain.Shopper, error) {
	// bcrypt hashes are salted, so there is no direct hash lookup; verify the
	// token against each active account's stored hash.
	query := `
		SELECT ` + shopperColumns + `
		FROM shoppers
		WHERE is_active = true
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query shoppers", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		shopper, err := scanShopper(rows)
		if err != nil {
			continue
		}

		if err := bcrypt.CompareHashAndPassword([]byte(shopper.TokenHash), []byte(token)); err == nil {
			return shopper, nil
		}
	}

	return nil, &errors.ErrUnauthorized{Message: "invalid access token"}
}

func (r *shopperRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shopper, error) {
	query := `
		SELECT ` + shopperColumns + `
		FROM shoppers
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	shopper, err := scanShopper(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &errors.ErrNotFound{Resource: "shopper"}
		}
		r.logger.Error("Failed to get shopper", zap.Error(err))
		return nil, err
	}

	return shopper, nil
}

func (r *shopperRepository) Create(ctx context.Context, shopper *domain.Shopper) error {
	if shopper.ID == uuid.Nil {
		shopper.ID = uuid.New()
	}

	query := `
		INSERT INTO shoppers (id, name, phone, email, district, upazila, address, city, postal_code, country, token_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`

	_, err := r.db.ExecContext(ctx, query,
		shopper.ID,
		shopper.Name,
		shopper.Phone,
		shopper.Email,
		shopper.District,
		shopper.Upazila,
		shopper.Address,
		shopper.City,
		shopper.PostalCode,
		shopper.Country,
		shopper.TokenHash,
		shopper.IsActive,
	)
	if err != nil {
		r.logger.Error("Failed to create shopper", zap.Error(err))
		return err
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShopper(row rowScanner) (*domain.Shopper, error) {
	var shopper domain.Shopper

	err := row.Scan(
		&shopper.ID,
		&shopper.Name,
		&shopper.Phone,
		&shopper.Email,
		&shopper.District,
		&shopper.Upazila,
		&shopper.Address,
		&shopper.City,
		&shopper.PostalCode,
		&shopper.Country,
		&shopper.TokenHash,
		&shopper.IsActive,
		&shopper.CreatedAt,
		&shopper.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &shopper, nil
}
