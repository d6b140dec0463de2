package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/repository"
	"github.com/vibast-solutions/ms-go-portfolio/app/service"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/DATA-DOG/go-sqlmock"
)

var projectColumns = []string{"id", "domain", "name", "description", "skills", "images", "blob_json", "user_id", "created_at", "updated_at"}

const (
	insertProjectQuery = `(?s)INSERT INTO projects`
	findProjectQuery   = `(?s)SELECT id, domain, name, .+\s+FROM projects WHERE id = \?`
	updateProjectQuery = `(?s)UPDATE projects SET`
	deleteProjectQuery = `DELETE FROM projects WHERE id = \?`
)

func newProjectService(t *testing.T) (service.ProjectService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, cleanup := newMockDB(t)
	t.Cleanup(cleanup)
	return service.NewProjectService(repository.NewProjectRepository(db)), mock
}

func TestProjectService_CreateDefaultsOwner(t *testing.T) {
	svc, mock := newProjectService(t)

	mock.ExpectExec(insertProjectQuery).
		WithArgs(sqlmock.AnyArg(), "web", "Portfolio", nil, `["go"]`, "[]", `{"liveLink":"https://example.com"}`, "u-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	res, err := svc.Create(context.Background(), "u-1", &types.CreateProjectRequest{
		Domain: "web",
		Name:   "Portfolio",
		Skills: []string{"go"},
		Blob:   &types.ProjectBlob{LiveLink: "https://example.com"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if res.ID == "" || res.UserID == nil || *res.UserID != "u-1" {
		t.Fatalf("unexpected project: %+v", res)
	}
	if res.Images == nil {
		t.Fatalf("expected empty images slice")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProjectService_GetNotFound(t *testing.T) {
	svc, mock := newProjectService(t)

	mock.ExpectQuery(findProjectQuery).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(projectColumns))

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, service.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_UpdateAppliesPartialFields(t *testing.T) {
	svc, mock := newProjectService(t)
	now := time.Now()

	mock.ExpectQuery(findProjectQuery).
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows(projectColumns).
			AddRow("p-1", "web", "Old", "keep me", []byte(`["go"]`), []byte(`[]`), []byte(`{}`), "u-1", now, now))
	mock.ExpectExec(updateProjectQuery).
		WithArgs("web", "New", "keep me", `["go"]`, "[]", "{}", "u-1", sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	name := "New"
	res, err := svc.Update(context.Background(), &types.UpdateProjectRequest{ID: "p-1", Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if res.Name != "New" || res.Description == nil || *res.Description != "keep me" {
		t.Fatalf("unexpected project: %+v", res)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProjectService_Delete(t *testing.T) {
	svc, mock := newProjectService(t)

	mock.ExpectExec(deleteProjectQuery).
		WithArgs("p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteProjectQuery).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.Delete(context.Background(), "p-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, service.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
