package sharelinks

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskcal/internal/common"
	"github.com/dmitrijs2005/taskcal/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

var linkCols = []string{"id", "token", "owner_id", "link_type", "permission", "active", "expires_at", "created_at", "updated_at"}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT INTO share_links \(token, owner_id, link_type, permission, expires_at\).*RETURNING id, active, created_at, updated_at`).
		WithArgs("tok", "u1", "snapshot", "view", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "active", "created_at", "updated_at"}).AddRow("l1", true, now, now))

	link, err := repo.Create(context.Background(), &models.ShareLink{
		Token: "tok", OwnerID: "u1", Type: models.ShareSnapshot, Permission: models.PermissionView,
	})
	require.NoError(t, err)
	assert.Equal(t, "l1", link.ID)
	assert.True(t, link.Active)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_TokenTaken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO share_links`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "share_links_token_key"})

	_, err := repo.Create(context.Background(), &models.ShareLink{Token: "tok", OwnerID: "u1"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO share_links`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.ShareLink{Token: "tok", OwnerID: "u1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestFindActiveByToken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)FROM share_links\s+WHERE token = \$1 AND active = TRUE`).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows(linkCols).AddRow("l1", "tok", "u1", "live", "edit", true, nil, now, now))

	link, err := repo.FindActiveByToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, models.ShareLive, link.Type)
	assert.Equal(t, models.PermissionEdit, link.Permission)
	assert.Nil(t, link.ExpiresAt)
}

func TestFindActiveByToken_Missing(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM share_links`).WithArgs("gone").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindActiveByToken(context.Background(), "gone")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	exp := now.Add(24 * time.Hour)
	mock.ExpectQuery(`(?s)WHERE owner_id = \$1\s+ORDER BY created_at DESC`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(linkCols).
			AddRow("l2", "t2", "u1", "live", "view", false, exp, now, now).
			AddRow("l1", "t1", "u1", "snapshot", "view", true, nil, now, now))

	got, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.False(t, got[0].Active)
	require.NotNil(t, got[0].ExpiresAt)
	assert.True(t, exp.Equal(*got[0].ExpiresAt))
	assert.True(t, got[1].Active)
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM share_links`).WillReturnRows(sqlmock.NewRows(linkCols))

	got, err := repo.ListByOwner(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDeactivate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)UPDATE share_links SET active = FALSE, updated_at = now\(\)\s+WHERE token = \$1 AND owner_id = \$2`
	mock.ExpectExec(q).WithArgs("tok", "u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("tok", "u2").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Deactivate(context.Background(), "tok", "u1"))
	assert.ErrorIs(t, repo.Deactivate(context.Background(), "tok", "u2"), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
