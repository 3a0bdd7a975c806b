package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/dbx"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
)

// populatedSelect joins the blueprint only when it still exists and belongs
// to the same owner.
const populatedSelect = `
	SELECT e.id, e.owner_id, e.blueprint_id, b.id, b.title, b.color,
		e.entry_date, e.status, e.custom_description, e.display_order, e.time_of_day
	FROM calendar_entries e
	LEFT JOIN blueprints b ON b.id = e.blueprint_id AND b.owner_id = e.owner_id
`

// PostgresRepository stores calendar entries over dbx.DBTX. Reads join
// blueprints so entries come back populated.
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

func scanEntry(s scanner) (*models.CalendarEntry, error) {
	var e models.CalendarEntry
	var bpID, title, color sql.NullString
	err := s.Scan(&e.ID, &e.OwnerID, &e.BlueprintID, &bpID, &title, &color,
		&e.Date, &e.Status, &e.CustomDescription, &e.Order, &e.TimeOfDay)
	if err != nil {
		return nil, err
	}
	if bpID.Valid {
		e.Blueprint = &models.BlueprintSummary{ID: bpID.String, Title: title.String, Color: color.String}
	}
	return &e, nil
}

// CountForDate returns how many entries ownerID has on date; the next
// entry placed on that day takes this value as its order.
func (r *PostgresRepository) CountForDate(ctx context.Context, ownerID string, date models.CalendarDate) (int, error) {
	query := `SELECT COUNT(*) FROM calendar_entries WHERE owner_id = $1 AND entry_date = $2`
	var n int
	if err := r.db.QueryRowContext(ctx, query, ownerID, date).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Create inserts entry and sets its id.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.CalendarEntry) error {
	query := `
		INSERT INTO calendar_entries (owner_id, blueprint_id, entry_date, status, custom_description, display_order, time_of_day)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		entry.OwnerID, entry.BlueprintID, entry.Date, entry.Status, entry.CustomDescription, entry.Order, entry.TimeOfDay,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOwner returns all entries of ownerID sorted by order, then date.
// Entries whose blueprint is gone come back with a nil Blueprint.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.CalendarEntry, error) {
	query := populatedSelect + `
		WHERE e.owner_id = $1
		ORDER BY e.display_order, e.entry_date, e.id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.CalendarEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Get returns the populated entry id if ownerID owns it, otherwise
// common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, id, ownerID string) (*models.CalendarEntry, error) {
	query := populatedSelect + `
		WHERE e.id = $1 AND e.owner_id = $2
	`
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

// Update applies the non-nil fields of patch, so a custom description can be
// replaced but not cleared. A missing or foreign entry returns
// common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id, ownerID string, patch models.EntryPatch) error {
	query := `
		UPDATE calendar_entries SET
			status = COALESCE($3, status),
			entry_date = COALESCE($4, entry_date),
			display_order = COALESCE($5, display_order),
			time_of_day = COALESCE($6, time_of_day),
			custom_description = COALESCE($7, custom_description)
		WHERE id = $1 AND owner_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID,
		patch.Status, patch.Date, patch.Order, patch.TimeOfDay, patch.CustomDescription)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes entry id of ownerID, or returns common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM calendar_entries WHERE id = $1 AND owner_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}
