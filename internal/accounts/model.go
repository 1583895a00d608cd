package accounts

import "time"

// UserAppointment is an appointment row joined with display fields for the
// owning caller.
type UserAppointment struct {
	ID              string    `json:"id"`
	ServiceID       string    `json:"service_id"`
	ServiceName     string    `json:"service_name"`
	TherapistID     string    `json:"therapist_id"`
	TherapistName   string    `json:"therapist_name"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Order is a retail order with its nested items.
type Order struct {
	ID         string      `json:"id"`
	Status     string      `json:"status"`
	TotalCents int         `json:"total_cents"`
	CreatedAt  time.Time   `json:"created_at"`
	Items      []OrderItem `json:"items"`
}

// OrderItem is a line of an order joined with the product name.
type OrderItem struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents"`
}

// Profile is the caller's profile row. A missing row is not an error.
type Profile struct {
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// User echoes the identity resolved from the caller's token, with any
// assigned roles. Clients derive isAdmin/isTherapist from Roles.
type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email,omitempty"`
	Roles []string `json:"roles"`
}
