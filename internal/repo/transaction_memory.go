package repo

import (
	"sort"
	"sync"

	"github.com/hendrawijaya/managestock/internal/models"
)

// InMemoryTransactionRepository is an in-memory implementation of
// TransactionRepository used in tests.
type InMemoryTransactionRepository struct {
	mu           sync.Mutex
	transactions []models.Transaction
	nextID       int
}

func NewInMemoryTransactionRepository() *InMemoryTransactionRepository {
	return &InMemoryTransactionRepository{nextID: 1}
}

func (r *InMemoryTransactionRepository) Create(t models.Transaction) (models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.transactions {
		if existing.TxID == t.TxID {
			return models.Transaction{}, ErrDuplicateTransaction
		}
	}
	t.ID = r.nextID
	r.nextID++
	r.transactions = append(r.transactions, t)
	return t, nil
}

func (r *InMemoryTransactionRepository) Exists(txID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.transactions {
		if t.TxID == txID {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryTransactionRepository) ByProduct(productID int) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Transaction
	for _, t := range r.transactions {
		if t.ProductID == productID {
			matched = append(matched, t)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })
	return matched, nil
}

func (r *InMemoryTransactionRepository) Recent(limit int) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	sorted := make([]models.Transaction, len(r.transactions))
	copy(sorted, r.transactions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// Clear removes all transactions; test helper.
func (r *InMemoryTransactionRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = nil
	r.nextID = 1
}
