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

var educationColumns = []string{"id", "degree", "college_name", "start_date", "end_date", "description", "tags", "user_id", "created_at", "updated_at"}

func newEducationController(t *testing.T) (*controller.EducationController, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newMockDB(t)
	return controller.NewEducationController(service.NewEducationService(repository.NewEducationRepository(db))), mock
}

func TestEducationList(t *testing.T) {
	c, mock := newEducationController(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)FROM education ORDER BY start_date DESC`).
		WillReturnRows(sqlmock.NewRows(educationColumns).
			AddRow("e-1", "BSc Computer Science", "TU Delft", now.AddDate(-6, 0, 0), now.AddDate(-3, 0, 0), nil, []byte(`["algorithms"]`), "u-1", now, now))

	ctx, rec := newJSONContext(http.MethodGet, "/education", "")
	if err := c.List(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var rows []types.EducationResponse
	decodeEnvelope(t, rec, &rows)
	if len(rows) != 1 || rows[0].CollegeName != "TU Delft" || rows[0].EndDate == nil {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestEducationListByUser_RequiresUser(t *testing.T) {
	c, _ := newEducationController(t)

	ctx, rec := newJSONContext(http.MethodGet, "/education/user", "")
	if err := c.ListByUser(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestEducationDelete(t *testing.T) {
	c, mock := newEducationController(t)

	mock.ExpectExec(`DELETE FROM education WHERE id = \?`).WithArgs("e-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM education WHERE id = \?`).WithArgs("e-1").WillReturnResult(sqlmock.NewResult(0, 0))

	for _, want := range []int{http.StatusOK, http.StatusNotFound} {
		ctx, rec := newJSONContext(http.MethodDelete, "/education/e-1", "")
		ctx.SetParamNames("id")
		ctx.SetParamValues("e-1")
		if err := c.Delete(ctx); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != want {
			t.Fatalf("expected status %d, got %d", want, rec.Code)
		}
	}
}
