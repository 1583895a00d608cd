package catalog

// Service is a bookable treatment. Read-only from this system's perspective.
type Service struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int    `json:"price_cents"`
	CategoryID      string `json:"category_id"`
	CategoryName    string `json:"category_name,omitempty"`
	Active          bool   `json:"active"`
}

// Therapist is a bookable staff member. Read-only.
type Therapist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Title  string `json:"title,omitempty"`
	Bio    string `json:"bio,omitempty"`
	Active bool   `json:"active"`
}

// Product is a retail item. Read-only.
type Product struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	PriceCents   int    `json:"price_cents"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
	Stock        int    `json:"stock"`
	Active       bool   `json:"active"`
}
