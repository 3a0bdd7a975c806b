package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/server/config"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/repomanager"
)

const (
	// shareTokenBytes random bytes give a 48 character hex token.
	shareTokenBytes = 24
	maxMintAttempts = 3
)

// newShareToken is a seam for tests that need colliding tokens.
var newShareToken = func() (string, error) {
	return common.MakeRandHexString(shareTokenBytes)
}

// MintResult is what the owner gets back after creating a link.
type MintResult struct {
	ShareURL string            `json:"shareUrl"`
	Link     *models.ShareLink `json:"linkData"`
}

// SharedCalendar is the public view behind a token. Entries holds
// []SnapshotEntry for snapshot links and []*models.CalendarEntry for live
// ones.
type SharedCalendar struct {
	Type       models.ShareType  `json:"type"`
	Permission models.Permission `json:"permission"`
	Entries    any               `json:"entries"`
}

// SnapshotEntry is an entry detached from its owner: no entry id, no owner,
// no blueprint reference.
type SnapshotEntry struct {
	Date              models.CalendarDate `json:"date"`
	Status            models.EntryStatus  `json:"status"`
	CustomDescription *string             `json:"customDescription"`
	Order             int                 `json:"order"`
	TimeOfDay         models.TimeOfDay    `json:"timeOfDay"`
	Title             *string             `json:"title"`
	Color             *string             `json:"color"`
	IsSnapshot        bool                `json:"isSnapshot"`
}

func newSnapshotEntry(e *models.CalendarEntry) SnapshotEntry {
	return SnapshotEntry{
		Date:              e.Date,
		Status:            e.Status,
		CustomDescription: e.CustomDescription,
		Order:             e.Order,
		TimeOfDay:         e.TimeOfDay,
		Title:             e.Title(),
		Color:             e.Color(),
		IsSnapshot:        true,
	}
}

// EffectivePermission returns the permission a link of type t is stored
// with. Snapshot links are always view-only; live links keep the requested
// permission. An empty request means view. The requested permission is
// only validated for live links.
func EffectivePermission(t models.ShareType, requested models.Permission) (models.Permission, error) {
	switch t {
	case models.ShareSnapshot:
		return models.PermissionView, nil
	case models.ShareLive:
		if requested == "" {
			return models.PermissionView, nil
		}
		return models.ParsePermission(string(requested))
	default:
		return "", fmt.Errorf("%w: type must be snapshot or live", common.ErrorValidation)
	}
}

// ShareService mints share links and renders the calendar they expose.
type ShareService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	publicBaseURL string
}

// NewShareService builds a ShareService. Share URLs are rooted at
// cfg.PublicBaseURL.
func NewShareService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *ShareService {
	return &ShareService{
		db:            db,
		repomanager:   m,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}
}

func (s *ShareService) shareURL(token string) string {
	return s.publicBaseURL + "/shared/" + token
}

// Mint creates an active link for ownerID. A token collision on the unique
// index draws a new token, up to maxMintAttempts times.
func (s *ShareService) Mint(ctx context.Context, ownerID string, t models.ShareType, requested models.Permission) (*MintResult, error) {
	perm, err := EffectivePermission(t, requested)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.ShareLinks(s.db)
	for attempt := 0; attempt < maxMintAttempts; attempt++ {
		token, err := newShareToken()
		if err != nil {
			return nil, fmt.Errorf("%w: token generation: %v", common.ErrorInternal, err)
		}

		link, err := repo.Create(ctx, &models.ShareLink{
			Token:      token,
			OwnerID:    ownerID,
			Type:       t,
			Permission: perm,
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error creating share link: %w", err)
		}
		return &MintResult{ShareURL: s.shareURL(token), Link: link}, nil
	}
	return nil, fmt.Errorf("%w: no unique share token after %d attempts", common.ErrorInternal, maxMintAttempts)
}

// Resolve renders the calendar behind token. Unknown and deactivated tokens
// both yield common.ErrLinkUnavailable.
func (s *ShareService) Resolve(ctx context.Context, token string) (*SharedCalendar, error) {
	link, err := s.repomanager.ShareLinks(s.db).FindActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrLinkUnavailable
		}
		return nil, fmt.Errorf("error searching share link: %w", err)
	}

	entries, err := s.repomanager.Entries(s.db).ListByOwner(ctx, link.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("error loading shared entries: %w", err)
	}

	switch link.Type {
	case models.ShareSnapshot:
		snapshot := make([]SnapshotEntry, 0, len(entries))
		for _, e := range entries {
			snapshot = append(snapshot, newSnapshotEntry(e))
		}
		return &SharedCalendar{Type: link.Type, Permission: models.PermissionView, Entries: snapshot}, nil
	case models.ShareLive:
		return &SharedCalendar{Type: link.Type, Permission: link.Permission, Entries: entries}, nil
	default:
		return nil, fmt.Errorf("%w: unknown share type %q", common.ErrorInternal, link.Type)
	}
}

// List returns all links ownerID has minted, including deactivated ones.
func (s *ShareService) List(ctx context.Context, ownerID string) ([]*models.ShareLink, error) {
	links, err := s.repomanager.ShareLinks(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing share links: %w", err)
	}
	return links, nil
}

// Deactivate switches off one of ownerID's links. Another owner's token is
// reported as not found.
func (s *ShareService) Deactivate(ctx context.Context, ownerID, token string) error {
	return s.repomanager.ShareLinks(s.db).Deactivate(ctx, token, ownerID)
}
