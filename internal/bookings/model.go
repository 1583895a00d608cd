package bookings

import (
	"strings"
	"time"
)

// Statuses an appointment row can carry. Only StatusConfirmed blocks a slot.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Appointment represents a booked slot, joined with service and therapist
// display fields on read.
type Appointment struct {
	ID              string    `json:"id"`
	ServiceID       string    `json:"service_id"`
	TherapistID     string    `json:"therapist_id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
	UserID          *string   `json:"user_id"`
	GuestName       *string   `json:"guest_name"`
	GuestPhone      *string   `json:"guest_phone"`
	Notes           string    `json:"notes,omitempty"`
	ServiceName     string    `json:"service_name,omitempty"`
	TherapistName   string    `json:"therapist_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateBookingRequest represents the request body for creating a booking.
// UserID is resolved from the caller's token, never from the body.
type CreateBookingRequest struct {
	UserID          string `json:"-"`
	ServiceID       string `json:"serviceId"`
	TherapistID     string `json:"therapistId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	Notes           string `json:"notes"`
	IsGuest         bool   `json:"isGuest"`
	GuestName       string `json:"guestName"`
	GuestPhone      string `json:"guestPhone"`
}

// Validate checks the request for required fields.
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.ServiceID) == "" {
		return ErrMissingService
	}
	if strings.TrimSpace(r.TherapistID) == "" {
		return ErrMissingTherapist
	}
	if strings.TrimSpace(r.AppointmentDate) == "" {
		return ErrMissingDate
	}
	if strings.TrimSpace(r.AppointmentTime) == "" {
		return ErrMissingTime
	}
	if r.IsGuest {
		if strings.TrimSpace(r.GuestName) == "" || strings.TrimSpace(r.GuestPhone) == "" {
			return ErrGuestDetailsRequired
		}
	} else if strings.TrimSpace(r.UserID) == "" {
		return ErrMissingUser
	}
	return nil
}
