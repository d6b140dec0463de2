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

var skillColumns = []string{"id", "name", "icon_name", "section", "icon_library", "user_id", "created_at", "updated_at"}

const findSkillQuery = `(?s)SELECT id, name, icon_name, .+\s+FROM skills WHERE id = \?`

func newSkillService(t *testing.T) (service.SkillService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, cleanup := newMockDB(t)
	t.Cleanup(cleanup)
	return service.NewSkillService(repository.NewSkillRepository(db)), mock
}

func TestSkillService_CreateUsesRequestedOwner(t *testing.T) {
	svc, mock := newSkillService(t)

	mock.ExpectExec(`(?s)INSERT INTO skills`).
		WithArgs(sqlmock.AnyArg(), "Go", "SiGo", "BACKEND", nil, "u-9", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	icon := "SiGo"
	owner := "u-9"
	res, err := svc.Create(context.Background(), "u-1", &types.CreateSkillRequest{
		Name:     "Go",
		IconName: &icon,
		Section:  "BACKEND",
		UserID:   &owner,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if res.UserID == nil || *res.UserID != "u-9" || res.IconLibrary != nil {
		t.Fatalf("unexpected skill: %+v", res)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSkillService_UpdateSection(t *testing.T) {
	svc, mock := newSkillService(t)
	now := time.Now()

	mock.ExpectQuery(findSkillQuery).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows(skillColumns).AddRow("s-1", "Go", nil, "BACKEND", "si", "u-1", now, now))
	mock.ExpectExec(`(?s)UPDATE skills SET`).
		WithArgs("Go", nil, "TOOLS", "si", "u-1", sqlmock.AnyArg(), "s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	section := "TOOLS"
	res, err := svc.Update(context.Background(), &types.UpdateSkillRequest{ID: "s-1", Section: &section})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if res.Section != "TOOLS" || res.Name != "Go" {
		t.Fatalf("unexpected skill: %+v", res)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSkillService_NotFound(t *testing.T) {
	svc, mock := newSkillService(t)

	mock.ExpectQuery(findSkillQuery).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(skillColumns))
	mock.ExpectExec(`DELETE FROM skills WHERE id = \?`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, service.ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound on get, got %v", err)
	}
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, service.ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound on delete, got %v", err)
	}
}
