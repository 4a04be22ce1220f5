package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// DatabaseStatus is the database portion of the status document.
type DatabaseStatus struct {
	Version           string `json:"version"`
	MaxConnections    int    `json:"max_connections"`
	OpenedConnections int    `json:"opened_connections"`
}

// StatusDependencies groups the external collaborators reported by the
// status endpoint.
type StatusDependencies struct {
	Database DatabaseStatus `json:"database"`
}

// Status is the health document served at /api/v1/status.
type Status struct {
	UpdatedAt    time.Time          `json:"updated_at"`
	Dependencies StatusDependencies `json:"dependencies"`
}

// StatusService inspects the database the service depends on.
type StatusService struct {
	db *sql.DB
}

// NewStatusService constructs a StatusService.
func NewStatusService(db *sql.DB) *StatusService {
	return &StatusService{db: db}
}

// Check gathers the current status document. Any query failure is
// surfaced as-is so the HTTP layer can report the dependency as down.
func (s *StatusService) Check(ctx context.Context) (*Status, error) {
	var version string
	if err := s.db.QueryRowContext(ctx, "SHOW server_version").Scan(&version); err != nil {
		return nil, fmt.Errorf("error querying server version: %w", err)
	}

	var maxConnsRaw string
	if err := s.db.QueryRowContext(ctx, "SHOW max_connections").Scan(&maxConnsRaw); err != nil {
		return nil, fmt.Errorf("error querying max connections: %w", err)
	}
	maxConns, err := strconv.Atoi(maxConnsRaw)
	if err != nil {
		return nil, fmt.Errorf("error parsing max connections: %w", err)
	}

	var opened int
	query := "SELECT COUNT(*)::int FROM pg_stat_activity WHERE datname = current_database()"
	if err := s.db.QueryRowContext(ctx, query).Scan(&opened); err != nil {
		return nil, fmt.Errorf("error querying opened connections: %w", err)
	}

	return &Status{
		UpdatedAt: time.Now().UTC(),
		Dependencies: StatusDependencies{
			Database: DatabaseStatus{
				Version:           version,
				MaxConnections:    maxConns,
				OpenedConnections: opened,
			},
		},
	}, nil
}
