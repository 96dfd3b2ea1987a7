package repomanager

import (
	"context"
	"database/sql"

	"github.com/murillocortez/olhar-autoral/internal/dbx"
	"github.com/murillocortez/olhar-autoral/internal/server/repositories/briefings"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Briefings(db dbx.DBTX) briefings.Repository
}
