package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresHasConfirmed(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepositoryWithQuerier(mock)
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("ther-1", "2026-09-15", "14:00").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.HasConfirmed(context.Background(), "ther-1", "2026-09-15", "14:00")
	if err != nil {
		t.Fatalf("conflict check: %v", err)
	}
	if !taken {
		t.Error("expected slot to be taken")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepositoryWithQuerier(mock)
	userID := "user-1"
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), "svc-1", "ther-1", "2026-09-15", "14:00", StatusConfirmed, &userID, (*string)(nil), (*string)(nil), "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))
	mock.ExpectQuery("SELECT s.name, t.name").
		WithArgs("svc-1", "ther-1").
		WillReturnRows(pgxmock.NewRows([]string{"name", "name"}).AddRow("Deep Tissue Massage", "Ana Silva"))

	created, err := repo.Create(context.Background(), &Appointment{
		ServiceID:       "svc-1",
		TherapistID:     "ther-1",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "14:00",
		Status:          StatusConfirmed,
		UserID:          &userID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}
	if !created.CreatedAt.Equal(now) {
		t.Errorf("expected created_at from store, got %v", created.CreatedAt)
	}
	if created.ServiceName != "Deep Tissue Massage" || created.TherapistName != "Ana Silva" {
		t.Errorf("expected joined display names, got %q/%q", created.ServiceName, created.TherapistName)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_UniqueViolationIsConflict(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepositoryWithQuerier(mock)
	guestName, guestPhone := "Walk In", "+15550100"

	mock.ExpectQuery("INSERT INTO appointments").
		WithArgs(pgxmock.AnyArg(), "svc-1", "ther-1", "2026-09-15", "14:00", StatusConfirmed, (*string)(nil), &guestName, &guestPhone, "").
		WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "appointments_confirmed_slot_idx"})

	_, err = repo.Create(context.Background(), &Appointment{
		ServiceID:       "svc-1",
		TherapistID:     "ther-1",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "14:00",
		Status:          StatusConfirmed,
		GuestName:       &guestName,
		GuestPhone:      &guestPhone,
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken for 23505, got %v", err)
	}
}

func TestPostgresConfirmedTimes(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	repo := NewPostgresRepositoryWithQuerier(mock)
	mock.ExpectQuery("SELECT appointment_time FROM appointments").
		WithArgs("ther-1", "2026-09-15").
		WillReturnRows(pgxmock.NewRows([]string{"appointment_time"}).AddRow("09:30").AddRow("14:00"))

	times, err := repo.ConfirmedTimes(context.Background(), "ther-1", "2026-09-15")
	if err != nil {
		t.Fatalf("confirmed times: %v", err)
	}
	if len(times) != 2 || times[0] != "09:30" || times[1] != "14:00" {
		t.Errorf("unexpected times: %v", times)
	}
}
