package controller_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/vibast-solutions/ms-go-portfolio/app/controller"

	"github.com/labstack/echo/v4"
)

func TestErrorHandler(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "unknown route", err: echo.ErrNotFound, wantStatus: http.StatusNotFound, wantMessage: "Not Found"},
		{name: "body too large", err: echo.ErrStatusRequestEntityTooLarge, wantStatus: http.StatusRequestEntityTooLarge, wantMessage: "Request Entity Too Large"},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMessage: "Internal server error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, rec := newJSONContext(http.MethodGet, "/missing", "")
			controller.ErrorHandler(tc.err, ctx)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
			envelope := decodeEnvelope(t, rec, nil)
			if envelope.Success || envelope.Message != tc.wantMessage {
				t.Fatalf("unexpected envelope: %+v", envelope)
			}
		})
	}
}
