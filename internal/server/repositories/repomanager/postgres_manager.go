package repomanager

import (
	"github.com/brunononogaki/meubonsai-app-v2/internal/dbx"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/activations"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/sessions"
	"github.com/brunononogaki/meubonsai-app-v2/internal/server/repositories/users"
)

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Activations(db dbx.DBTX) activations.Repository {
	return activations.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}
