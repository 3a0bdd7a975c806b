package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/taskcal/internal/dbx"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/blueprints"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/entries"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/sharelinks"
	"github.com/dmitrijs2005/taskcal/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or an open
// transaction, so services can choose per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Blueprints(db dbx.DBTX) blueprints.Repository
	Entries(db dbx.DBTX) entries.Repository
	ShareLinks(db dbx.DBTX) sharelinks.Repository
}
