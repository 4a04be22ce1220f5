// Package repomanager hands out repositories bound to an arbitrary DBTX,
// so services can run them against the pool or inside a transaction.
package repomanager

import (
	"github.com/brunononogaki/meubonsai-app-v2/internal/dbx"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/activations"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/sessions"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Activations(db dbx.DBTX) activations.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
