package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/repomanager"
)

// NewBlueprint is the input for creating a task template. Empty Color and
// TimeOfDay take their defaults.
type NewBlueprint struct {
	Title       string           `json:"title"`
	Description *string          `json:"defaultDescription"`
	Color       string           `json:"color"`
	TimeOfDay   models.TimeOfDay `json:"timeOfDay"`
}

// BlueprintService manages the task library entries are placed from.
type BlueprintService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewBlueprintService builds a BlueprintService.
func NewBlueprintService(db *sql.DB, m repomanager.RepositoryManager) *BlueprintService {
	return &BlueprintService{db: db, repomanager: m}
}

// List returns the blueprints of ownerID, newest first.
func (s *BlueprintService) List(ctx context.Context, ownerID string) ([]*models.Blueprint, error) {
	bps, err := s.repomanager.Blueprints(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing blueprints: %w", err)
	}
	return bps, nil
}

// Create validates in, applies the default color and time of day, and
// stores the blueprint.
func (s *BlueprintService) Create(ctx context.Context, ownerID string, in NewBlueprint) (*models.Blueprint, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	bp := &models.Blueprint{
		OwnerID:     ownerID,
		Title:       title,
		Description: in.Description,
		Color:       in.Color,
		TimeOfDay:   in.TimeOfDay,
	}
	if bp.Color == "" {
		bp.Color = models.DefaultBlueprintColor
	}
	if bp.TimeOfDay == "" {
		bp.TimeOfDay = models.TimeOfDayAny
	} else if _, err := models.ParseTimeOfDay(string(bp.TimeOfDay)); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Blueprints(s.db).Create(ctx, bp)
	if err != nil {
		return nil, fmt.Errorf("error creating blueprint: %w", err)
	}
	return created, nil
}

// Update applies a partial patch. Unknown or foreign ids return
// common.ErrorNotFound.
func (s *BlueprintService) Update(ctx context.Context, ownerID, id string, patch models.BlueprintPatch) (*models.Blueprint, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}
	if patch.TimeOfDay != nil {
		if _, err := models.ParseTimeOfDay(string(*patch.TimeOfDay)); err != nil {
			return nil, err
		}
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.repomanager.Blueprints(s.db).Update(ctx, id, ownerID, patch)
}

// Delete removes the blueprint only. Entries created from it keep their
// now dangling blueprint id.
func (s *BlueprintService) Delete(ctx context.Context, ownerID, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.repomanager.Blueprints(s.db).Delete(ctx, id, ownerID)
}
