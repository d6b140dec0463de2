package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/entity"
	"github.com/vibast-solutions/ms-go-portfolio/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

var skillColumns = []string{"id", "name", "icon_name", "section", "icon_library", "user_id", "created_at", "updated_at"}

func TestSkillRepository_CreateAndFind(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewSkillRepository(db)
	now := time.Now()
	skill := &entity.Skill{
		ID:        "s-1",
		Name:      "Go",
		Section:   "BACKEND",
		IconName:  sql.NullString{String: "SiGo", Valid: true},
		UserID:    sql.NullString{String: "u-1", Valid: true},
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(`(?s)INSERT INTO skills \(id, name, icon_name, section, icon_library, user_id, created_at, updated_at\)\s+VALUES`).
		WithArgs("s-1", "Go", "SiGo", "BACKEND", nil, "u-1", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`(?s)SELECT id, name, icon_name, .+\s+FROM skills WHERE id = \?`).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows(skillColumns).AddRow("s-1", "Go", "SiGo", "BACKEND", nil, "u-1", now, now))

	if err := repo.Create(context.Background(), skill); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	found, err := repo.FindByID(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found == nil || found.IconName.String != "SiGo" || found.IconLibrary.Valid {
		t.Fatalf("unexpected skill: %+v", found)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSkillRepository_ListByUserAndDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewSkillRepository(db)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM skills WHERE user_id = \? ORDER BY created_at DESC`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(skillColumns).
			AddRow("s-2", "Redis", nil, "DATABASE", nil, "u-1", now, now).
			AddRow("s-1", "Go", nil, "BACKEND", nil, "u-1", now.Add(-time.Hour), now))
	mock.ExpectExec(`DELETE FROM skills WHERE id = \?`).
		WithArgs("s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM skills WHERE id = \?`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	skills, err := repo.ListByUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(skills) != 2 || skills[0].Name != "Redis" {
		t.Fatalf("unexpected skills: %+v", skills)
	}

	deleted, err := repo.Delete(context.Background(), "s-1")
	if err != nil || !deleted {
		t.Fatalf("expected delete, got %v %v", deleted, err)
	}
	deleted, err = repo.Delete(context.Background(), "gone")
	if err != nil || deleted {
		t.Fatalf("expected no-op delete, got %v %v", deleted, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
