package accounts

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/serenity-spa/booking-platform/internal/auth"
	"github.com/serenity-spa/booking-platform/pkg/logging"
)

func newUserDataRequest(t *testing.T, url string, identity *auth.Identity) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	if identity != nil {
		req = req.WithContext(auth.WithIdentity(req.Context(), *identity))
	}
	return req
}

func TestGetUserData_RequiresIdentity(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	handler := NewHandler(NewStore(db), logging.Default())

	w := httptest.NewRecorder()
	handler.GetUserData(w, newUserDataRequest(t, "/get-user-data?type=profile", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", w.Code)
	}
}

func TestGetUserData_Appointments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	handler := NewHandler(NewStore(db), logging.Default())

	mock.ExpectQuery("SELECT a.id, a.service_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "service_id", "service_name", "therapist_id", "therapist_name",
			"appointment_date", "appointment_time", "status", "notes", "created_at",
		}).AddRow("appt-1", "svc-1", "Swedish Massage", "ther-1", "Ana Silva", "2026-09-20", "15:00", "confirmed", "", time.Now()))

	w := httptest.NewRecorder()
	handler.GetUserData(w, newUserDataRequest(t, "/get-user-data?type=appointments", &auth.Identity{UserID: "user-1"}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Appointments []UserAppointment `json:"appointments"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Appointments) != 1 || resp.Appointments[0].ServiceName != "Swedish Massage" {
		t.Errorf("unexpected appointments: %+v", resp.Appointments)
	}
}

func TestGetUserData_ProfileMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	handler := NewHandler(NewStore(db), logging.Default())

	mock.ExpectQuery("SELECT user_id").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "full_name", "phone", "created_at"}))
	mock.ExpectQuery("SELECT role FROM user_roles").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("therapist"))

	w := httptest.NewRecorder()
	handler.GetUserData(w, newUserDataRequest(t, "/get-user-data?type=profile", &auth.Identity{UserID: "user-1", Email: "ana@example.com"}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for missing profile, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Profile *Profile `json:"profile"`
		User    User     `json:"user"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Profile != nil {
		t.Errorf("expected profile null, got %+v", resp.Profile)
	}
	if resp.User.ID != "user-1" || resp.User.Email != "ana@example.com" {
		t.Errorf("expected user echo, got %+v", resp.User)
	}
	if len(resp.User.Roles) != 1 || resp.User.Roles[0] != "therapist" {
		t.Errorf("expected roles, got %v", resp.User.Roles)
	}
}

func TestGetUserData_UnknownType(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	handler := NewHandler(NewStore(db), logging.Default())

	w := httptest.NewRecorder()
	handler.GetUserData(w, newUserDataRequest(t, "/get-user-data?type=secrets", &auth.Identity{UserID: "user-1"}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown type, got %d", w.Code)
	}
}

func TestGetUserData_StoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	handler := NewHandler(NewStore(db), logging.Default())

	mock.ExpectQuery("SELECT o.id, o.status").
		WithArgs("user-1").
		WillReturnError(sqlmock.ErrCancelled)

	w := httptest.NewRecorder()
	handler.GetUserData(w, newUserDataRequest(t, "/get-user-data?type=orders", &auth.Identity{UserID: "user-1"}))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
