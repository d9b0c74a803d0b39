package models

import "time"

// Transaction is an append-only ledger entry. Records are never updated
// once written.
type Transaction struct {
	ID         int       `json:"id"`
	TxID       string    `json:"transaction_id"`
	ProductID  int       `json:"product_id"`
	Quantity   int       `json:"quantity"`
	Type       string    `json:"type"`
	CustomerID string    `json:"customer_id,omitempty"`
	TotalPrice float64   `json:"total_price"`
	Date       time.Time `json:"date"`
}
