package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/registry-dashboard/internal/domain"
)

// AffiliationRepository manages account to business links.
type AffiliationRepository interface {
	Create(ctx context.Context, aff *domain.Affiliation) error
	Delete(ctx context.Context, accountID, businessIdentifier string) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.Affiliation, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Affiliation, error)
}

type affiliationRepository struct {
	pool *pgxpool.Pool
}

// NewAffiliationRepository builds the repository.
func NewAffiliationRepository(pool *pgxpool.Pool) AffiliationRepository {
	return &affiliationRepository{pool: pool}
}

func (r *affiliationRepository) Create(ctx context.Context, aff *domain.Affiliation) error {
	const query = `
        INSERT INTO affiliations (id, account_id, business_identifier, nickname, created_by)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at`
	err := r.pool.QueryRow(ctx, query,
		aff.ID,
		aff.AccountID,
		aff.BusinessIdentifier,
		aff.Nickname,
		aff.CreatedBy,
	).Scan(&aff.CreatedAt)
	return mapWriteError(err)
}

func (r *affiliationRepository) Delete(ctx context.Context, accountID, businessIdentifier string) error {
	const query = `DELETE FROM affiliations WHERE account_id=$1 AND business_identifier=$2`
	cmd, err := r.pool.Exec(ctx, query, accountID, businessIdentifier)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *affiliationRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Affiliation, error) {
	const query = `
        SELECT id, account_id, business_identifier, nickname, created_by, created_at
        FROM affiliations WHERE account_id=$1
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	return scanAffiliations(rows)
}

func (r *affiliationRepository) ListRecent(ctx context.Context, limit int) ([]domain.Affiliation, error) {
	if limit <= 0 {
		limit = 25
	}
	const query = `
        SELECT id, account_id, business_identifier, nickname, created_by, created_at
        FROM affiliations
        ORDER BY created_at DESC
        LIMIT $1`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return scanAffiliations(rows)
}

func scanAffiliations(rows pgx.Rows) ([]domain.Affiliation, error) {
	defer rows.Close()

	result := []domain.Affiliation{}
	for rows.Next() {
		var aff domain.Affiliation
		if err := rows.Scan(&aff.ID, &aff.AccountID, &aff.BusinessIdentifier, &aff.Nickname, &aff.CreatedBy, &aff.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, aff)
	}
	return result, rows.Err()
}
