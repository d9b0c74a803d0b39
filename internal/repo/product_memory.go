package repo

import (
	"sort"
	"strings"
	"sync"

	"github.com/hendrawijaya/managestock/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository used in tests.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products []models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{nextID: 1}
}

func (r *InMemoryProductRepository) Create(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.Code == p.Code {
			return models.Product{}, ErrDuplicateProductCode
		}
	}
	p.ID = r.nextID
	r.nextID++
	r.products = append(r.products, p)
	return p, nil
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetByCode(code string) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) Last() (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.products) == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return r.products[len(r.products)-1], nil
}

func (r *InMemoryProductRepository) List(f ProductFilter) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Product
	for _, p := range r.products {
		if f.Category == "" || strings.Contains(strings.ToLower(p.Category), strings.ToLower(f.Category)) {
			matched = append(matched, p)
		}
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *InMemoryProductRepository) AdjustStock(id, delta int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			if p.Stock+delta < 0 {
				return models.Product{}, ErrInvalidStockChange
			}
			r.products[i].Stock += delta
			return r.products[i], nil
		}
	}
	return models.Product{}, ErrInvalidStockChange
}

func (r *InMemoryProductRepository) UpdateDetails(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.products {
		if existing.ID == p.ID {
			p.Code = existing.Code
			p.CreatedAt = existing.CreatedAt
			r.products[i] = p
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) InventoryValue() (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var total float64
	for _, p := range r.products {
		total += p.Price * float64(p.Stock)
	}
	return total, nil
}

func (r *InMemoryProductRepository) LowStock(threshold int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Product
	for _, p := range r.products {
		if p.Stock <= threshold {
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Stock < matched[j].Stock })
	return matched, nil
}

// Clear removes all products; test helper.
func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
	r.nextID = 1
}
