package repo

import "github.com/hendrawijaya/managestock/internal/models"

// TransactionRepository persists the append-only transaction ledger.
type TransactionRepository interface {
	// Create inserts a ledger entry. Returns ErrDuplicateTransaction when
	// the transaction id is already recorded.
	Create(t models.Transaction) (models.Transaction, error)
	Exists(txID string) (bool, error)
	// ByProduct returns a product's transactions, newest first.
	ByProduct(productID int) ([]models.Transaction, error)
	Recent(limit int) ([]models.Transaction, error)
}
