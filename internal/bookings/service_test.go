package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/serenity-spa/booking-platform/pkg/logging"
)

func newTestService(repo Repository) *Service {
	return NewService(repo, nil, logging.Default())
}

func validRequest() *CreateBookingRequest {
	return &CreateBookingRequest{
		UserID:          "user-1",
		ServiceID:       "svc-1",
		TherapistID:     "ther-1",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "14:00",
	}
}

func TestCreate_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := newTestService(repo)

	appt, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != StatusConfirmed {
		t.Errorf("expected confirmed status, got %s", appt.Status)
	}
	if appt.UserID == nil || *appt.UserID != "user-1" {
		t.Errorf("expected user_id from token, got %v", appt.UserID)
	}
	if appt.GuestName != nil || appt.GuestPhone != nil {
		t.Errorf("user-linked booking must have null guest fields")
	}
	if appt.ID == "" || appt.CreatedAt.IsZero() {
		t.Errorf("expected id and created_at to be set")
	}
}

func TestCreate_GuestFieldExclusivity(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := newTestService(repo)

	req := validRequest()
	req.UserID = ""
	req.IsGuest = true
	req.GuestName = "Walk In"
	req.GuestPhone = "+15550100"

	appt, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.UserID != nil {
		t.Errorf("guest booking must have null user_id, got %v", *appt.UserID)
	}
	if appt.GuestName == nil || *appt.GuestName != "Walk In" {
		t.Errorf("expected guest name, got %v", appt.GuestName)
	}
	if appt.GuestPhone == nil || *appt.GuestPhone != "+15550100" {
		t.Errorf("expected guest phone, got %v", appt.GuestPhone)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService(NewInMemoryRepository())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
		want   error
	}{
		{"missing service", func(r *CreateBookingRequest) { r.ServiceID = "" }, ErrMissingService},
		{"missing therapist", func(r *CreateBookingRequest) { r.TherapistID = "" }, ErrMissingTherapist},
		{"missing date", func(r *CreateBookingRequest) { r.AppointmentDate = "" }, ErrMissingDate},
		{"missing time", func(r *CreateBookingRequest) { r.AppointmentTime = "" }, ErrMissingTime},
		{"guest without phone", func(r *CreateBookingRequest) {
			r.IsGuest = true
			r.GuestName = "Walk In"
		}, ErrGuestDetailsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			if _, err := svc.Create(ctx, req); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCreate_ConflictOnOccupiedSlot(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validRequest()); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	second := validRequest()
	second.UserID = "user-2"
	if _, err := svc.Create(ctx, second); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}

	// A different slot for the same therapist is still open.
	third := validRequest()
	third.AppointmentTime = "14:30"
	if _, err := svc.Create(ctx, third); err != nil {
		t.Fatalf("adjacent slot should book: %v", err)
	}
}

// raceRepository passes every HasConfirmed fast-path check so concurrent
// requests reach the insert, where the store constraint must decide.
type raceRepository struct {
	*InMemoryRepository
}

func (r *raceRepository) HasConfirmed(ctx context.Context, therapistID, date, timeLabel string) (bool, error) {
	return false, nil
}

func TestCreate_ConcurrentRequestsSettleOnConstraint(t *testing.T) {
	repo := &raceRepository{NewInMemoryRepository()}
	svc := newTestService(repo)

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotTaken):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if conflicts != racers-1 {
		t.Fatalf("expected %d conflicts, got %d", racers-1, conflicts)
	}
}

func TestAvailability(t *testing.T) {
	repo := NewInMemoryRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validRequest()); err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	open, err := svc.Availability(ctx, "ther-1", "2026-09-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 17 {
		t.Fatalf("expected 17 open slots, got %d", len(open))
	}
	for _, slot := range open {
		if slot == "14:00" {
			t.Fatalf("14:00 should be booked")
		}
	}

	// Another therapist's day is untouched.
	open, err = svc.Availability(ctx, "ther-2", "2026-09-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 18 {
		t.Fatalf("expected full template for other therapist, got %d", len(open))
	}
}
