package repo

import (
	"strconv"
	"sync"

	"github.com/hendrawijaya/managestock/internal/models"
)

// InMemoryCustomerRepository is an in-memory implementation of
// CustomerRepository used in tests.
type InMemoryCustomerRepository struct {
	mu        sync.Mutex
	customers []models.Customer
}

func NewInMemoryCustomerRepository() *InMemoryCustomerRepository {
	return &InMemoryCustomerRepository{}
}

func (r *InMemoryCustomerRepository) Add(c models.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = append(r.customers, c)
}

func (r *InMemoryCustomerRepository) GetByIDOrName(ref string) (models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, idErr := strconv.Atoi(ref)
	for _, c := range r.customers {
		if (idErr == nil && c.ID == id) || c.Name == ref {
			return c, nil
		}
	}
	return models.Customer{}, ErrCustomerNotFound
}
