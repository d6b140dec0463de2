package controller_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-portfolio/app/controller"
	"github.com/vibast-solutions/ms-go-portfolio/app/repository"
	"github.com/vibast-solutions/ms-go-portfolio/app/service"
	"github.com/vibast-solutions/ms-go-portfolio/app/types"

	"github.com/DATA-DOG/go-sqlmock"
)

var datedItemColumns = []string{"id", "title", "subtitle", "description", "date", "image_url", "image_public_id", "user_id", "created_at", "updated_at"}

func newCertificateController(t *testing.T) (*controller.CertificateController, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	return controller.NewCertificateController(service.NewCertificateService(repository.NewCertificateRepository(db))), mock
}

func TestCertificateCreate_RejectsBadImageURL(t *testing.T) {
	c, _ := newCertificateController(t)

	for _, body := range []string{
		`{"title":"CKA","date":"2024-05-02","imageUrl":"ftp://cdn.example.com/c.png"}`,
		`{"title":"CKA"}`,
	} {
		ctx, rec := newJSONContext(http.MethodPost, "/certificates", body)
		ctx.Set("user_id", "u-1")
		if err := c.Create(ctx); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %s, got %d", body, rec.Code)
		}
	}
}

func TestCertificateGet(t *testing.T) {
	c, mock := newCertificateController(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM certificates WHERE id = \?`).
		WithArgs("c-1").
		WillReturnRows(sqlmock.NewRows(datedItemColumns).
			AddRow("c-1", "CKA", "CNCF", nil, now, "https://cdn.example.com/c.png", "certs/c.png", "u-1", now, now))

	ctx, rec := newJSONContext(http.MethodGet, "/certificates/c-1", "")
	ctx.SetParamNames("id")
	ctx.SetParamValues("c-1")
	if err := c.Get(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var certificate types.CertificateResponse
	decodeEnvelope(t, rec, &certificate)
	if certificate.ImagePublicID == nil || *certificate.ImagePublicID != "certs/c.png" {
		t.Fatalf("unexpected certificate: %+v", certificate)
	}
}
