package services

import (
	"context"
	"database/sql"
	"fmt"
	"path"

	"github.com/pressly/goose/v3"

	"github.com/brunononogaki/meubonsai-app-v2/internal/server/migrations"
)

// MigrationRecord is one migration as reported by the migrations endpoint.
type MigrationRecord struct {
	Version int64  `json:"version"`
	Name    string `json:"name"`
	State   string `json:"state"`
}

// MigratorService lists and applies the embedded schema migrations.
// Migrations are not run at boot; operators drive them through the
// endpoint, so a fresh database stays empty until explicitly migrated.
type MigratorService struct {
	db *sql.DB
}

// NewMigratorService constructs a MigratorService.
func NewMigratorService(db *sql.DB) *MigratorService {
	return &MigratorService{db: db}
}

// Pending returns the migrations not yet applied, in order.
func (s *MigratorService) Pending(ctx context.Context) ([]MigrationRecord, error) {
	provider, err := s.newProvider()
	if err != nil {
		return nil, err
	}
	defer provider.Close()

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("error collecting migration status: %w", err)
	}

	pending := make([]MigrationRecord, 0, len(statuses))
	for _, st := range statuses {
		if st.State != goose.StatePending {
			continue
		}
		pending = append(pending, MigrationRecord{
			Version: st.Source.Version,
			Name:    path.Base(st.Source.Path),
			State:   string(st.State),
		})
	}
	return pending, nil
}

// ApplyPending runs all pending migrations and returns the applied set.
func (s *MigratorService) ApplyPending(ctx context.Context) ([]MigrationRecord, error) {
	provider, err := s.newProvider()
	if err != nil {
		return nil, err
	}
	defer provider.Close()

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	applied := make([]MigrationRecord, 0, len(results))
	for _, r := range results {
		applied = append(applied, MigrationRecord{
			Version: r.Source.Version,
			Name:    path.Base(r.Source.Path),
			State:   string(goose.StateApplied),
		})
	}
	return applied, nil
}

func (s *MigratorService) newProvider() (*goose.Provider, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, s.db, migrations.Migrations)
	if err != nil {
		return nil, fmt.Errorf("error creating migration provider: %w", err)
	}
	return provider, nil
}
