package blueprints

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/dbx"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
)

const columns = `id, owner_id, title, description, color, time_of_day, created_at, updated_at`

// PostgresRepository stores task blueprints over dbx.DBTX. Every query is
// scoped by owner.
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

func scanBlueprint(s scanner) (*models.Blueprint, error) {
	bp := &models.Blueprint{}
	err := s.Scan(&bp.ID, &bp.OwnerID, &bp.Title, &bp.Description, &bp.Color, &bp.TimeOfDay, &bp.CreatedAt, &bp.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return bp, nil
}

// Create inserts bp and returns it with id and timestamps set.
func (r *PostgresRepository) Create(ctx context.Context, bp *models.Blueprint) (*models.Blueprint, error) {
	query := `
		INSERT INTO blueprints (owner_id, title, description, color, time_of_day)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, bp.OwnerID, bp.Title, bp.Description, bp.Color, bp.TimeOfDay).
		Scan(&bp.ID, &bp.CreatedAt, &bp.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return bp, nil
}

// ListByOwner returns the blueprints of ownerID, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Blueprint, error) {
	query := `SELECT ` + columns + ` FROM blueprints
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Blueprint, 0)
	for rows.Next() {
		bp, err := scanBlueprint(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, bp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Get returns blueprint id if ownerID owns it, otherwise
// common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id, ownerID string) (*models.Blueprint, error) {
	query := `SELECT ` + columns + ` FROM blueprints
		WHERE id = $1 AND owner_id = $2
	`
	bp, err := scanBlueprint(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return bp, nil
}

// Update applies the non-nil fields of patch and returns the stored result.
func (r *PostgresRepository) Update(ctx context.Context, id, ownerID string, patch models.BlueprintPatch) (*models.Blueprint, error) {
	query := `
		UPDATE blueprints SET
			title = COALESCE($3, title),
			description = COALESCE($4, description),
			color = COALESCE($5, color),
			time_of_day = COALESCE($6, time_of_day),
			updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + columns
	bp, err := scanBlueprint(r.db.QueryRowContext(ctx, query, id, ownerID,
		patch.Title, patch.Description, patch.Color, patch.TimeOfDay))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return bp, nil
}

// Delete removes the blueprint only. Entries referencing it are kept.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM blueprints WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
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
