package bookings

import "errors"

var (
	// ErrMissingService is returned when serviceId is absent
	ErrMissingService = errors.New("serviceId is required")

	// ErrMissingTherapist is returned when therapistId is absent
	ErrMissingTherapist = errors.New("therapistId is required")

	// ErrMissingDate is returned when appointmentDate is absent
	ErrMissingDate = errors.New("appointmentDate is required")

	// ErrMissingTime is returned when appointmentTime is absent
	ErrMissingTime = errors.New("appointmentTime is required")

	// ErrGuestDetailsRequired is returned when a guest booking lacks name or phone
	ErrGuestDetailsRequired = errors.New("guest bookings require guestName and guestPhone")

	// ErrMissingUser is returned when a non-guest booking has no resolved user
	ErrMissingUser = errors.New("a user identity is required for non-guest bookings")

	// ErrSlotTaken is returned when a confirmed appointment already occupies the slot
	ErrSlotTaken = errors.New("slot no longer available")
)
