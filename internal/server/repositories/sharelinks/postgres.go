package sharelinks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/dbx"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
)

const columns = `id, token, owner_id, link_type, permission, active, expires_at, created_at, updated_at`

// PostgresRepository stores share links in the share_links table over
// dbx.DBTX (a *sql.DB or an open *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLink(s scanner) (*models.ShareLink, error) {
	l := &models.ShareLink{}
	var expires sql.NullTime
	err := s.Scan(&l.ID, &l.Token, &l.OwnerID, &l.Type, &l.Permission, &l.Active, &expires, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		l.ExpiresAt = &expires.Time
	}
	return l, nil
}

// Create inserts link as active and returns it with id and timestamps
// filled in. A duplicate token returns common.ErrorAlreadyExists so the
// caller can draw a new one.
func (r *PostgresRepository) Create(ctx context.Context, link *models.ShareLink) (*models.ShareLink, error) {
	query := `
		INSERT INTO share_links (token, owner_id, link_type, permission, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, active, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, link.Token, link.OwnerID, link.Type, link.Permission, link.ExpiresAt).
		Scan(&link.ID, &link.Active, &link.CreatedAt, &link.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return link, nil
}

// FindActiveByToken returns the active link for token. Unknown and
// deactivated tokens both return common.ErrorNotFound.
func (r *PostgresRepository) FindActiveByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	query := `SELECT ` + columns + ` FROM share_links
		WHERE token = $1 AND active = TRUE
	`
	l, err := scanLink(r.db.QueryRowContext(ctx, query, token))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

// ListByOwner returns every link of ownerID, newest first, active or not.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.ShareLink, error) {
	query := `SELECT ` + columns + ` FROM share_links
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.ShareLink, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Deactivate sets active = false on ownerID's link. A token that does not
// exist or belongs to someone else returns common.ErrorNotFound.
func (r *PostgresRepository) Deactivate(ctx context.Context, token, ownerID string) error {
	query := `
		UPDATE share_links SET active = FALSE, updated_at = now()
		WHERE token = $1 AND owner_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, token, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
