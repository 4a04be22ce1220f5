package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStatusCheck_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SHOW server_version").
		WillReturnRows(sqlmock.NewRows([]string{"server_version"}).AddRow("16.4"))
	mock.ExpectQuery("SHOW max_connections").
		WillReturnRows(sqlmock.NewRows([]string{"max_connections"}).AddRow("100"))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	s := NewStatusService(db)
	before := time.Now().UTC()
	status, err := s.Check(context.Background())
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}

	dbStatus := status.Dependencies.Database
	if dbStatus.Version != "16.4" {
		t.Errorf("version = %q, want %q", dbStatus.Version, "16.4")
	}
	if dbStatus.MaxConnections != 100 {
		t.Errorf("max_connections = %d, want 100", dbStatus.MaxConnections)
	}
	if dbStatus.OpenedConnections != 3 {
		t.Errorf("opened_connections = %d, want 3", dbStatus.OpenedConnections)
	}
	if status.UpdatedAt.Before(before) || status.UpdatedAt.After(time.Now().UTC()) {
		t.Errorf("updated_at %v outside the call window", status.UpdatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestStatusCheck_DatabaseDown(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SHOW server_version").
		WillReturnError(errors.New("connection refused"))

	s := NewStatusService(db)
	if _, err := s.Check(context.Background()); err == nil {
		t.Fatal("expected the query failure to surface")
	}
}

func TestStatusCheck_MalformedMaxConnections(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery("SHOW server_version").
		WillReturnRows(sqlmock.NewRows([]string{"server_version"}).AddRow("16.4"))
	mock.ExpectQuery("SHOW max_connections").
		WillReturnRows(sqlmock.NewRows([]string{"max_connections"}).AddRow("many"))

	s := NewStatusService(db)
	if _, err := s.Check(context.Background()); err == nil {
		t.Fatal("expected a parse error")
	}
}
