package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/registry-dashboard/internal/domain"
)

// AuthorizationRepository reads and writes role tags granted to accounts.
type AuthorizationRepository interface {
	RolesForAccount(ctx context.Context, accountID string) ([]string, error)
	Replace(ctx context.Context, auth *domain.AccountAuthorization) error
}

type authorizationRepository struct {
	pool *pgxpool.Pool
}

// NewAuthorizationRepository builds the repository.
func NewAuthorizationRepository(pool *pgxpool.Pool) AuthorizationRepository {
	return &authorizationRepository{pool: pool}
}

func (r *authorizationRepository) RolesForAccount(ctx context.Context, accountID string) ([]string, error) {
	const query = `SELECT role FROM account_authorizations WHERE account_id=$1 ORDER BY role`
	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []string{}
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// Replace swaps the full role list of an account in one transaction.
func (r *authorizationRepository) Replace(ctx context.Context, auth *domain.AccountAuthorization) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `DELETE FROM account_authorizations WHERE account_id=$1`, auth.AccountID); err != nil {
		return err
	}
	for _, role := range auth.Roles {
		if _, err := tx.Exec(ctx,
			`INSERT INTO account_authorizations (account_id, role) VALUES ($1,$2) ON CONFLICT DO NOTHING`,
			auth.AccountID, role,
		); err != nil {
			return err
		}
	}
	if err := tx.QueryRow(ctx, `SELECT NOW()`).Scan(&auth.UpdatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
