package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/server/config"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NewEntry is the input for placing a blueprint on a date. A zero TimeOfDay
// falls back to the blueprint's default.
type NewEntry struct {
	BlueprintID       string               `json:"blueprintId"`
	Date              *models.CalendarDate `json:"date"`
	TimeOfDay         models.TimeOfDay     `json:"timeOfDay"`
	CustomDescription *string              `json:"customDescription"`
}

// CalendarService manages the calendar entries of one owner at a time.
// Entries of other owners behave as if they did not exist.
type CalendarService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

// NewCalendarService builds a CalendarService; cfg supplies the S3 settings
// used by Export.
func NewCalendarService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *CalendarService {
	return &CalendarService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

// checkID rejects ids that are not UUIDs before they reach the database; they
// cannot match any row, so they are reported as not found.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	return nil
}

// List returns all of ownerID's entries with their blueprints resolved.
func (s *CalendarService) List(ctx context.Context, ownerID string) ([]*models.CalendarEntry, error) {
	entries, err := s.repomanager.Entries(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return entries, nil
}

// Create places a blueprint on a date. The entry is appended after the
// entries already on that date.
func (s *CalendarService) Create(ctx context.Context, ownerID string, in NewEntry) (*models.CalendarEntry, error) {
	if in.Date == nil {
		return nil, fmt.Errorf("%w: date is required", common.ErrorValidation)
	}
	if in.BlueprintID == "" {
		return nil, fmt.Errorf("%w: blueprintId is required", common.ErrorValidation)
	}
	if in.TimeOfDay != "" {
		if _, err := models.ParseTimeOfDay(string(in.TimeOfDay)); err != nil {
			return nil, err
		}
	}
	if err := checkID(in.BlueprintID); err != nil {
		return nil, err
	}

	bp, err := s.repomanager.Blueprints(s.db).Get(ctx, in.BlueprintID, ownerID)
	if err != nil {
		return nil, err
	}

	entryRepo := s.repomanager.Entries(s.db)

	// Two concurrent creates on one date may get the same order.
	order, err := entryRepo.CountForDate(ctx, ownerID, *in.Date)
	if err != nil {
		return nil, fmt.Errorf("error counting entries: %w", err)
	}

	tod := in.TimeOfDay
	if tod == "" {
		tod = bp.TimeOfDay
	}
	blueprintID := bp.ID

	entry := &models.CalendarEntry{
		OwnerID:           ownerID,
		BlueprintID:       &blueprintID,
		Date:              *in.Date,
		Status:            models.StatusPending,
		CustomDescription: in.CustomDescription,
		Order:             order,
		TimeOfDay:         tod,
	}
	if err := entryRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	return entryRepo.Get(ctx, entry.ID, ownerID)
}

// Update applies patch to one of ownerID's entries and returns the entry as
// stored afterwards.
func (s *CalendarService) Update(ctx context.Context, ownerID, id string, patch models.EntryPatch) (*models.CalendarEntry, error) {
	if err := validateEntryPatch(patch); err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}

	repo := s.repomanager.Entries(s.db)
	if err := repo.Update(ctx, id, ownerID, patch); err != nil {
		return nil, err
	}
	return repo.Get(ctx, id, ownerID)
}

func validateEntryPatch(p models.EntryPatch) error {
	if p.Status != nil {
		if _, err := models.ParseEntryStatus(string(*p.Status)); err != nil {
			return err
		}
	}
	if p.TimeOfDay != nil {
		if _, err := models.ParseTimeOfDay(string(*p.TimeOfDay)); err != nil {
			return err
		}
	}
	if p.Order != nil && *p.Order < 0 {
		return fmt.Errorf("%w: order must not be negative", common.ErrorValidation)
	}
	return nil
}

// Delete removes an entry of ownerID. Unknown or foreign ids return
// common.ErrorNotFound.
func (s *CalendarService) Delete(ctx context.Context, ownerID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.repomanager.Entries(s.db).Delete(ctx, id, ownerID)
}
