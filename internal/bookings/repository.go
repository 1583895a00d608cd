package bookings

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage.
type Repository interface {
	// HasConfirmed reports whether a confirmed appointment exists for the
	// (therapist, date, time) triple.
	HasConfirmed(ctx context.Context, therapistID, date, timeLabel string) (bool, error)

	// Create inserts a confirmed appointment. Implementations must return
	// ErrSlotTaken when the store's uniqueness constraint rejects the row.
	Create(ctx context.Context, appt *Appointment) (*Appointment, error)

	// ConfirmedTimes returns the confirmed appointment times for a
	// (therapist, date) pair.
	ConfirmedTimes(ctx context.Context, therapistID, date string) ([]string, error)
}

// InMemoryRepository is a Repository backed by process memory. It enforces the
// same one-confirmed-appointment-per-slot invariant the database schema does,
// so handler and service tests observe realistic conflict behavior.
type InMemoryRepository struct {
	mu    sync.Mutex
	rows  map[string]*Appointment
	names func(serviceID, therapistID string) (string, string)
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*Appointment)}
}

func slotKey(therapistID, date, timeLabel string) string {
	return therapistID + "|" + date + "|" + timeLabel
}

// HasConfirmed reports whether the slot is occupied.
func (r *InMemoryRepository) HasConfirmed(ctx context.Context, therapistID, date, timeLabel string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.rows[slotKey(therapistID, date, timeLabel)]
	return ok && appt.Status == StatusConfirmed, nil
}

// Create inserts the appointment, rejecting duplicates for the same slot.
func (r *InMemoryRepository) Create(ctx context.Context, appt *Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey(appt.TherapistID, appt.AppointmentDate, appt.AppointmentTime)
	if existing, ok := r.rows[key]; ok && existing.Status == StatusConfirmed {
		return nil, ErrSlotTaken
	}

	created := *appt
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = time.Now().UTC()
	r.rows[key] = &created

	out := created
	return &out, nil
}

// ConfirmedTimes returns booked confirmed times for the therapist and date.
func (r *InMemoryRepository) ConfirmedTimes(ctx context.Context, therapistID, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var times []string
	for _, appt := range r.rows {
		if appt.TherapistID == therapistID && appt.AppointmentDate == date && appt.Status == StatusConfirmed {
			times = append(times, appt.AppointmentTime)
		}
	}
	return times, nil
}
