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

var datedItemColumns = []string{"id", "title", "subtitle", "description", "date", "image_url", "image_public_id", "user_id", "created_at", "updated_at"}

func TestCertificateService_CreateAndUpdate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	svc := service.NewCertificateService(repository.NewCertificateRepository(db))
	issued := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	mock.ExpectExec(`(?s)INSERT INTO certificates`).
		WithArgs(sqlmock.AnyArg(), "CKA", nil, nil, issued, "https://cdn.example.com/cka.png", "certs/cka.png", "u-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	imageURL := "https://cdn.example.com/cka.png"
	publicID := "certs/cka.png"
	created, err := svc.Create(context.Background(), "u-1", &types.CreateCertificateRequest{
		Title:         "CKA",
		Date:          &types.Date{Time: issued},
		ImageURL:      &imageURL,
		ImagePublicID: &publicID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ImageURL == nil || *created.ImageURL != imageURL || !created.Date.Equal(issued) {
		t.Fatalf("unexpected certificate: %+v", created)
	}

	mock.ExpectQuery(`(?s)SELECT id, title, subtitle, .+\s+FROM certificates WHERE id = \?`).
		WithArgs(created.ID).
		WillReturnRows(sqlmock.NewRows(datedItemColumns).
			AddRow(created.ID, "CKA", nil, nil, issued, imageURL, publicID, "u-1", now, now))
	mock.ExpectExec(`(?s)UPDATE certificates SET`).
		WithArgs("CKA", "Linux Foundation", nil, issued, imageURL, publicID, "u-1", sqlmock.AnyArg(), created.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	subtitle := "Linux Foundation"
	updated, err := svc.Update(context.Background(), &types.UpdateCertificateRequest{ID: created.ID, Subtitle: &subtitle})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Subtitle == nil || *updated.Subtitle != subtitle {
		t.Fatalf("unexpected certificate: %+v", updated)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCertificateService_DeleteMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	svc := service.NewCertificateService(repository.NewCertificateRepository(db))

	mock.ExpectExec(`DELETE FROM certificates WHERE id = \?`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, service.ErrCertificateNotFound) {
		t.Fatalf("expected ErrCertificateNotFound, got %v", err)
	}
}
