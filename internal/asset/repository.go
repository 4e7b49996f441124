// AngelaMos | 2026
// repository.go

package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/ntandostore/internal/core"
)

type Repository interface {
	CreateLogo(ctx context.Context, logo *Logo) error
	GetLogo(ctx context.Context, id string) (*Logo, error)
	DeleteLogo(ctx context.Context, id string) error
	ListLogos(ctx context.Context) ([]Logo, error)

	// ActivateCompanyLogo deactivates every active row and inserts logo as
	// the active one in a single transaction. Concurrent activations are
	// serialized by the partial unique index on is_active; the loser
	// surfaces core.ErrDuplicateKey.
	ActivateCompanyLogo(ctx context.Context, logo *CompanyLogo) error
	ActiveCompanyLogo(ctx context.Context) (*CompanyLogo, error)
}

// The repository holds the root handle rather than a DBTX because the
// company-logo swap opens its own transaction.
type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateLogo(ctx context.Context, logo *Logo) error {
	query := `
		INSERT INTO logos (id, filename, client_name, size_bytes, content_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING upload_date`

	err := r.db.GetContext(ctx, &logo.UploadDate, query,
		logo.ID,
		logo.Filename,
		logo.ClientName,
		logo.SizeBytes,
		logo.ContentHash,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create logo: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create logo: %w", err)
	}

	return nil
}

func (r *repository) GetLogo(ctx context.Context, id string) (*Logo, error) {
	query := `
		SELECT id, filename, client_name, size_bytes, content_hash, upload_date
		FROM logos
		WHERE id = $1`

	var logo Logo
	err := r.db.GetContext(ctx, &logo, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get logo: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get logo: %w", err)
	}

	return &logo, nil
}

func (r *repository) DeleteLogo(ctx context.Context, id string) error {
	query := `DELETE FROM logos WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete logo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete logo: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete logo: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) ListLogos(ctx context.Context) ([]Logo, error) {
	query := `
		SELECT id, filename, client_name, size_bytes, content_hash, upload_date
		FROM logos
		ORDER BY upload_date DESC`

	var logos []Logo
	if err := r.db.SelectContext(ctx, &logos, query); err != nil {
		return nil, fmt.Errorf("list logos: %w", err)
	}

	return logos, nil
}

func (r *repository) ActivateCompanyLogo(
	ctx context.Context,
	logo *CompanyLogo,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		deactivate := `UPDATE company_logos SET is_active = FALSE WHERE is_active`
		if _, err := tx.ExecContext(ctx, deactivate); err != nil {
			return fmt.Errorf("deactivate company logos: %w", err)
		}

		insert := `
			INSERT INTO company_logos (id, filename, is_active)
			VALUES ($1, $2, TRUE)
			RETURNING upload_date`

		err := tx.GetContext(ctx, &logo.UploadDate, insert, logo.ID, logo.Filename)
		if err != nil {
			if core.IsUniqueViolation(err) {
				return fmt.Errorf("insert company logo: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("insert company logo: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	logo.IsActive = true
	return nil
}

func (r *repository) ActiveCompanyLogo(
	ctx context.Context,
) (*CompanyLogo, error) {
	query := `
		SELECT id, filename, is_active, upload_date
		FROM company_logos
		WHERE is_active`

	var logo CompanyLogo
	err := r.db.GetContext(ctx, &logo, query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("active company logo: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("active company logo: %w", err)
	}

	return &logo, nil
}
