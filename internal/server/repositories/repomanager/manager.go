package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/rentkeeper/internal/dbx"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/properties"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/rentkeeper/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DB or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Properties(db dbx.DBTX) properties.Repository
}
