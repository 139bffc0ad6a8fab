package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"dipstudio/internal/domain"
	"dipstudio/internal/domain/models"
)

func newTestRepo(t *testing.T) (pgxmock.PgxPoolIface, *PostgresProjectRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	repo := &PostgresProjectRepository{
		pool:   mock,
		tables: NewTableNames("test_"),
	}
	return mock, repo
}

func TestProjectRepository_Create(t *testing.T) {
	mock, repo := newTestRepo(t)

	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "created_at", "edited_at"}).
		AddRow(int64(1), now, now)

	mock.ExpectQuery(`INSERT INTO test_projects`).
		WithArgs("widget", nil, "u1", "User One", "u1", "User One").
		WillReturnRows(rows)

	project := &models.Project{
		Name:        "widget",
		CreatorID:   "u1",
		CreatorName: "User One",
		EditorID:    "u1",
		EditorName:  "User One",
	}

	if err := repo.Create(context.Background(), project); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if project.ID != 1 {
		t.Errorf("expected ID 1, got %d", project.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestProjectRepository_Create_Duplicate(t *testing.T) {
	mock, repo := newTestRepo(t)

	mock.ExpectQuery(`INSERT INTO test_projects`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})

	project := &models.Project{Name: "widget", CreatorID: "u1", CreatorName: "U", EditorID: "u1", EditorName: "U"}
	err := repo.Create(context.Background(), project)

	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected *domain.ConflictError, got %v", err)
	}
}

func TestProjectRepository_GetByID_NotFound(t *testing.T) {
	mock, repo := newTestRepo(t)

	mock.ExpectQuery(`SELECT id, name, description`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected domain.ErrNotFound, got %v", err)
	}
}

func TestProjectRepository_List(t *testing.T) {
	mock, repo := newTestRepo(t)

	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "name", "description", "creator_id", "creator_name",
		"editor_id", "editor_name", "created_at", "edited_at",
	}).
		AddRow(int64(1), "widget", (*string)(nil), "u1", "User One", "u1", "User One", now, now).
		AddRow(int64(2), "gadget", (*string)(nil), "u2", "User Two", "u2", "User Two", now, now)

	mock.ExpectQuery(`SELECT id, name, description`).WillReturnRows(rows)

	projects, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	if projects[0].Name != "widget" || projects[1].Name != "gadget" {
		t.Errorf("unexpected project contents: %+v", projects)
	}
}

func TestProjectRepository_Delete_NotFound(t *testing.T) {
	mock, repo := newTestRepo(t)

	mock.ExpectExec(`DELETE FROM test_projects`).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected domain.ErrNotFound, got %v", err)
	}
}
