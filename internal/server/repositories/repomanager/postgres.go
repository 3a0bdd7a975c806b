// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskcal/internal/dbx"
	"github.com/dmitrijs2005/taskcal/internal/server/migrations"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/blueprints"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/sharelinks"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL repositories.
type PostgresRepositoryManager struct{}

// Users returns the users repository bound to db.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RefreshTokens returns the refresh token repository bound to db.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// Blueprints returns the blueprint repository bound to db.
func (m *PostgresRepositoryManager) Blueprints(db dbx.DBTX) blueprints.Repository {
	return blueprints.NewPostgresRepository(db)
}

// Entries returns the calendar entry repository bound to db.
func (m *PostgresRepositoryManager) Entries(db dbx.DBTX) entries.Repository {
	return entries.NewPostgresRepository(db)
}

// ShareLinks returns the share link repository bound to db.
func (m *PostgresRepositoryManager) ShareLinks(db dbx.DBTX) sharelinks.Repository {
	return sharelinks.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded goose migrations.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager returns the manager used in production.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
