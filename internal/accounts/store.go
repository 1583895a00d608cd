package accounts

import (
	"context"
	"database/sql"
	"fmt"
)

// Store runs caller-scoped read queries against the relational database.
type Store struct {
	db *sql.DB
}

// NewStore creates a store backed by database/sql.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListAppointments returns the caller's appointments joined with service and
// therapist names, newest first.
func (s *Store) ListAppointments(ctx context.Context, userID string) ([]UserAppointment, error) {
	query := `
		SELECT a.id, a.service_id, COALESCE(sv.name, ''), a.therapist_id, COALESCE(t.name, ''),
		       a.appointment_date, a.appointment_time, a.status, COALESCE(a.notes, ''), a.created_at
		FROM appointments a
		LEFT JOIN services sv ON sv.id = a.service_id
		LEFT JOIN therapists t ON t.id = a.therapist_id
		WHERE a.user_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("accounts: appointments query failed: %w", err)
	}
	defer rows.Close()

	var appointments []UserAppointment
	for rows.Next() {
		var a UserAppointment
		if err := rows.Scan(&a.ID, &a.ServiceID, &a.ServiceName, &a.TherapistID, &a.TherapistName,
			&a.AppointmentDate, &a.AppointmentTime, &a.Status, &a.Notes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("accounts: appointments scan failed: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("accounts: appointments rows failed: %w", err)
	}
	return appointments, nil
}

// ListOrders returns the caller's orders with nested items, newest first.
func (s *Store) ListOrders(ctx context.Context, userID string) ([]Order, error) {
	query := `
		SELECT o.id, o.status, o.total_cents, o.created_at,
		       oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.unit_price_cents
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("accounts: orders query failed: %w", err)
	}
	defer rows.Close()

	var orders []Order
	index := map[string]int{}
	for rows.Next() {
		var (
			o         Order
			productID sql.NullString
			name      string
			quantity  sql.NullInt64
			unitPrice sql.NullInt64
		)
		if err := rows.Scan(&o.ID, &o.Status, &o.TotalCents, &o.CreatedAt, &productID, &name, &quantity, &unitPrice); err != nil {
			return nil, fmt.Errorf("accounts: orders scan failed: %w", err)
		}
		pos, ok := index[o.ID]
		if !ok {
			o.Items = []OrderItem{}
			orders = append(orders, o)
			pos = len(orders) - 1
			index[o.ID] = pos
		}
		if productID.Valid {
			orders[pos].Items = append(orders[pos].Items, OrderItem{
				ProductID:      productID.String,
				ProductName:    name,
				Quantity:       int(quantity.Int64),
				UnitPriceCents: int(unitPrice.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("accounts: orders rows failed: %w", err)
	}
	return orders, nil
}

// GetProfile returns the caller's profile, or nil when no row exists.
func (s *Store) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	query := `
		SELECT user_id, COALESCE(full_name, ''), COALESCE(phone, ''), created_at
		FROM profiles
		WHERE user_id = $1
	`
	var p Profile
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&p.UserID, &p.FullName, &p.Phone, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("accounts: profile query failed: %w", err)
	}
	return &p, nil
}

// ListRoles returns the caller's role assignments.
func (s *Store) ListRoles(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("accounts: roles query failed: %w", err)
	}
	defer rows.Close()

	roles := []string{}
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("accounts: roles scan failed: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("accounts: roles rows failed: %w", err)
	}
	return roles, nil
}
