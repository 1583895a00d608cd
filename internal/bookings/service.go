package bookings

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/serenity-spa/booking-platform/internal/observability/metrics"
	"github.com/serenity-spa/booking-platform/pkg/logging"
)

// Service implements the booking flow: validate, conflict-check, insert.
type Service struct {
	repo    Repository
	metrics *metrics.BookingMetrics
	logger  *logging.Logger
	tracer  trace.Tracer
}

// NewService creates a booking service.
func NewService(repo Repository, m *metrics.BookingMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		repo:    repo,
		metrics: m,
		logger:  logger,
		tracer:  otel.Tracer("spa.internal.bookings"),
	}
}

// Create validates the request, checks the slot and inserts a confirmed
// appointment. The pre-insert check is a fast-path UX optimization; the
// store's unique constraint settles concurrent requests, surfacing as
// ErrSlotTaken from the repository.
func (s *Service) Create(ctx context.Context, req *CreateBookingRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "bookings.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("therapist_id", req.TherapistID),
		attribute.String("appointment_date", req.AppointmentDate),
		attribute.String("appointment_time", req.AppointmentTime),
		attribute.Bool("guest", req.IsGuest),
	)
	start := time.Now()

	taken, err := s.repo.HasConfirmed(ctx, req.TherapistID, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, err
	}
	if taken {
		s.metrics.ObserveConflict()
		return nil, ErrSlotTaken
	}

	appt := &Appointment{
		ServiceID:       req.ServiceID,
		TherapistID:     req.TherapistID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          StatusConfirmed,
		Notes:           req.Notes,
	}
	kind := "user"
	if req.IsGuest {
		kind = "guest"
		name, phone := req.GuestName, req.GuestPhone
		appt.GuestName = &name
		appt.GuestPhone = &phone
	} else {
		userID := req.UserID
		appt.UserID = &userID
	}

	created, err := s.repo.Create(ctx, appt)
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			// Lost the race; the constraint is authoritative.
			s.metrics.ObserveConflict()
			return nil, err
		}
		s.metrics.ObserveBookingCreated(kind, "failed")
		return nil, err
	}

	s.metrics.ObserveBookingCreated(kind, StatusConfirmed)
	s.metrics.ObserveBookingLatency(time.Since(start).Seconds())
	s.logger.Info("appointment created",
		"id", created.ID,
		"therapist_id", created.TherapistID,
		"date", created.AppointmentDate,
		"time", created.AppointmentTime,
		"kind", kind,
	)
	return created, nil
}

// Availability returns the open template slots for a therapist on a date.
func (s *Service) Availability(ctx context.Context, therapistID, date string) ([]string, error) {
	booked, err := s.repo.ConfirmedTimes(ctx, therapistID, date)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveAvailabilityQuery()
	return AvailableSlots(booked), nil
}
