package models

// Customer is read-only to this service; only the category matters for
// discount eligibility.
type Customer struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
