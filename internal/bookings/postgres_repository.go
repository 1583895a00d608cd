package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the SQLSTATE raised when the partial unique index on
// confirmed (therapist, date, time) rejects an insert.
const uniqueViolation = "23505"

// querier is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("bookings: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithQuerier allows injecting mocks for tests.
func NewPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	return &PostgresRepository{pool: q}
}

// HasConfirmed reports whether a confirmed appointment occupies the slot.
func (r *PostgresRepository) HasConfirmed(ctx context.Context, therapistID, date, timeLabel string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE therapist_id = $1 AND appointment_date = $2 AND appointment_time = $3 AND status = 'confirmed'
		)
	`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, therapistID, date, timeLabel).Scan(&exists); err != nil {
		return false, fmt.Errorf("bookings: conflict check failed: %w", err)
	}
	return exists, nil
}

// Create inserts a new appointment row and returns it joined with service and
// therapist display names. A unique-index violation maps to ErrSlotTaken: the
// schema constraint is the authoritative conflict signal, the HasConfirmed
// check is only a fast path.
func (r *PostgresRepository) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	id := appt.ID
	if id == "" {
		id = uuid.NewString()
	}

	insert := `
		INSERT INTO appointments (id, service_id, therapist_id, appointment_date, appointment_time, status, user_id, guest_name, guest_phone, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, insert,
		id,
		appt.ServiceID,
		appt.TherapistID,
		appt.AppointmentDate,
		appt.AppointmentTime,
		appt.Status,
		appt.UserID,
		appt.GuestName,
		appt.GuestPhone,
		appt.Notes,
	).Scan(&createdAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("bookings: insert failed: %w", err)
	}

	created := *appt
	created.ID = id
	created.CreatedAt = createdAt

	// Join display fields for the response; a failed lookup does not undo the
	// booking.
	names := `
		SELECT s.name, t.name
		FROM services s, therapists t
		WHERE s.id = $1 AND t.id = $2
	`
	if err := r.pool.QueryRow(ctx, names, appt.ServiceID, appt.TherapistID).Scan(&created.ServiceName, &created.TherapistName); err != nil && err != pgx.ErrNoRows {
		return nil, fmt.Errorf("bookings: display lookup failed: %w", err)
	}

	return &created, nil
}

// ConfirmedTimes returns the confirmed appointment times for the therapist on
// the given date.
func (r *PostgresRepository) ConfirmedTimes(ctx context.Context, therapistID, date string) ([]string, error) {
	query := `
		SELECT appointment_time FROM appointments
		WHERE therapist_id = $1 AND appointment_date = $2 AND status = 'confirmed'
	`
	rows, err := r.pool.Query(ctx, query, therapistID, date)
	if err != nil {
		return nil, fmt.Errorf("bookings: booked times query failed: %w", err)
	}
	defer rows.Close()

	var times []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("bookings: booked times scan failed: %w", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: booked times rows failed: %w", err)
	}
	return times, nil
}
