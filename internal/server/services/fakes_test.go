package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/dbx"
	"github.com/dmitrijs2005/taskcal/internal/server/config"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/blueprints"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/sharelinks"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/users"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		PublicBaseURL:                "http://client.test/",
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "exports",
	}
}

// memStore is an in-memory stand-in for every repository, keyed the same
// way the SQL schema is.
type memStore struct {
	mu         sync.Mutex
	users      map[string]*models.User
	refresh    map[string]*models.RefreshToken
	blueprints map[string]*models.Blueprint
	entries    []*models.CalendarEntry
	links      map[string]*models.ShareLink

	// failures injected per operation name
	fail map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:      map[string]*models.User{},
		refresh:    map[string]*models.RefreshToken{},
		blueprints: map[string]*models.Blueprint{},
		links:      map[string]*models.ShareLink{},
		fail:       map[string]error{},
	}
}

func (m *memStore) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memStore) Users(dbx.DBTX) users.Repository                 { return memUsers{m} }
func (m *memStore) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memRefresh{m} }
func (m *memStore) Blueprints(dbx.DBTX) blueprints.Repository       { return memBlueprints{m} }
func (m *memStore) Entries(dbx.DBTX) entries.Repository             { return memEntries{m} }
func (m *memStore) ShareLinks(dbx.DBTX) sharelinks.Repository       { return memLinks{m} }

func (m *memStore) failure(op string) error {
	return m.fail[op]
}

func (m *memStore) addBlueprint(owner, title, color string, tod models.TimeOfDay) *models.Blueprint {
	m.mu.Lock()
	defer m.mu.Unlock()
	bp := &models.Blueprint{ID: uuid.NewString(), OwnerID: owner, Title: title, Color: color, TimeOfDay: tod}
	m.blueprints[bp.ID] = bp
	return bp
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("users.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.m.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = uuid.NewString()
	u.Theme = "light"
	u.CreatedAt = time.Now()
	r.m.users[u.ID] = u
	return u, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("users.GetByEmail"); err != nil {
		return nil, err
	}
	for _, u := range r.m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type memRefresh struct{ m *memStore }

func (r memRefresh) Create(_ context.Context, t *models.RefreshToken) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("refresh.Create"); err != nil {
		return err
	}
	cp := *t
	r.m.refresh[t.Token] = &cp
	return nil
}

func (r memRefresh) Find(_ context.Context, token string) (*models.RefreshToken, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("refresh.Find"); err != nil {
		return nil, err
	}
	if t, ok := r.m.refresh[token]; ok {
		return t, nil
	}
	return nil, common.ErrorNotFound
}

func (r memRefresh) Delete(_ context.Context, token string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("refresh.Delete"); err != nil {
		return err
	}
	delete(r.m.refresh, token)
	return nil
}

type memBlueprints struct{ m *memStore }

func (r memBlueprints) Create(_ context.Context, bp *models.Blueprint) (*models.Blueprint, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("blueprints.Create"); err != nil {
		return nil, err
	}
	bp.ID = uuid.NewString()
	bp.CreatedAt = time.Now()
	bp.UpdatedAt = bp.CreatedAt
	r.m.blueprints[bp.ID] = bp
	return bp, nil
}

func (r memBlueprints) ListByOwner(_ context.Context, owner string) ([]*models.Blueprint, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("blueprints.ListByOwner"); err != nil {
		return nil, err
	}
	out := make([]*models.Blueprint, 0)
	for _, bp := range r.m.blueprints {
		if bp.OwnerID == owner {
			out = append(out, bp)
		}
	}
	return out, nil
}

func (r memBlueprints) Get(_ context.Context, id, owner string) (*models.Blueprint, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if bp, ok := r.m.blueprints[id]; ok && bp.OwnerID == owner {
		return bp, nil
	}
	return nil, common.ErrorNotFound
}

func (r memBlueprints) Update(_ context.Context, id, owner string, p models.BlueprintPatch) (*models.Blueprint, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	bp, ok := r.m.blueprints[id]
	if !ok || bp.OwnerID != owner {
		return nil, common.ErrorNotFound
	}
	if p.Title != nil {
		bp.Title = *p.Title
	}
	if p.Description != nil {
		bp.Description = p.Description
	}
	if p.Color != nil {
		bp.Color = *p.Color
	}
	if p.TimeOfDay != nil {
		bp.TimeOfDay = *p.TimeOfDay
	}
	return bp, nil
}

func (r memBlueprints) Delete(_ context.Context, id, owner string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	bp, ok := r.m.blueprints[id]
	if !ok || bp.OwnerID != owner {
		return common.ErrorNotFound
	}
	delete(r.m.blueprints, id)
	return nil
}

type memEntries struct{ m *memStore }

// populate copies e and resolves its blueprint like the SQL LEFT JOIN does.
func (r memEntries) populate(e *models.CalendarEntry) *models.CalendarEntry {
	cp := *e
	cp.Blueprint = nil
	if e.BlueprintID != nil {
		if bp, ok := r.m.blueprints[*e.BlueprintID]; ok && bp.OwnerID == e.OwnerID {
			cp.Blueprint = &models.BlueprintSummary{ID: bp.ID, Title: bp.Title, Color: bp.Color}
		}
	}
	return &cp
}

func (r memEntries) CountForDate(_ context.Context, owner string, date models.CalendarDate) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("entries.CountForDate"); err != nil {
		return 0, err
	}
	n := 0
	for _, e := range r.m.entries {
		if e.OwnerID == owner && e.Date.String() == date.String() {
			n++
		}
	}
	return n, nil
}

func (r memEntries) Create(_ context.Context, e *models.CalendarEntry) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("entries.Create"); err != nil {
		return err
	}
	e.ID = uuid.NewString()
	cp := *e
	r.m.entries = append(r.m.entries, &cp)
	return nil
}

func (r memEntries) ListByOwner(_ context.Context, owner string) ([]*models.CalendarEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("entries.ListByOwner"); err != nil {
		return nil, err
	}
	out := make([]*models.CalendarEntry, 0)
	for _, e := range r.m.entries {
		if e.OwnerID == owner {
			out = append(out, r.populate(e))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r memEntries) find(id, owner string) (int, bool) {
	for i, e := range r.m.entries {
		if e.ID == id && e.OwnerID == owner {
			return i, true
		}
	}
	return 0, false
}

func (r memEntries) Get(_ context.Context, id, owner string) (*models.CalendarEntry, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i, ok := r.find(id, owner)
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.populate(r.m.entries[i]), nil
}

func (r memEntries) Update(_ context.Context, id, owner string, p models.EntryPatch) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i, ok := r.find(id, owner)
	if !ok {
		return common.ErrorNotFound
	}
	e := r.m.entries[i]
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Order != nil {
		e.Order = *p.Order
	}
	if p.TimeOfDay != nil {
		e.TimeOfDay = *p.TimeOfDay
	}
	if p.CustomDescription != nil {
		e.CustomDescription = p.CustomDescription
	}
	return nil
}

func (r memEntries) Delete(_ context.Context, id, owner string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i, ok := r.find(id, owner)
	if !ok {
		return common.ErrorNotFound
	}
	r.m.entries = append(r.m.entries[:i], r.m.entries[i+1:]...)
	return nil
}

type memLinks struct{ m *memStore }

func (r memLinks) Create(_ context.Context, l *models.ShareLink) (*models.ShareLink, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("links.Create"); err != nil {
		return nil, err
	}
	if _, taken := r.m.links[l.Token]; taken {
		return nil, common.ErrorAlreadyExists
	}
	l.ID = uuid.NewString()
	l.Active = true
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	cp := *l
	r.m.links[l.Token] = &cp
	return l, nil
}

func (r memLinks) FindActiveByToken(_ context.Context, token string) (*models.ShareLink, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("links.FindActiveByToken"); err != nil {
		return nil, err
	}
	if l, ok := r.m.links[token]; ok && l.Active {
		cp := *l
		return &cp, nil
	}
	return nil, common.ErrorNotFound
}

func (r memLinks) ListByOwner(_ context.Context, owner string) ([]*models.ShareLink, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failure("links.ListByOwner"); err != nil {
		return nil, err
	}
	out := make([]*models.ShareLink, 0)
	for _, l := range r.m.links {
		if l.OwnerID == owner {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memLinks) Deactivate(_ context.Context, token, owner string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	l, ok := r.m.links[token]
	if !ok || l.OwnerID != owner {
		return common.ErrorNotFound
	}
	l.Active = false
	return nil
}
