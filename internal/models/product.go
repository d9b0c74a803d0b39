package models

import "time"

// Product represents a product entity in the inventory system.
type Product struct {
	ID        int       `json:"id"`
	Code      string    `json:"product_code"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
