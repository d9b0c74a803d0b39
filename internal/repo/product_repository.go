package repo

import "github.com/hendrawijaya/managestock/internal/models"

// ProductFilter narrows and paginates product listings.
type ProductFilter struct {
	Category string
	Page     int
	Limit    int
}

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(p models.Product) (models.Product, error)
	GetByID(id int) (models.Product, error)
	GetByCode(code string) (models.Product, error)
	// Last returns the most recently created product, used for sequential
	// product-code generation. Returns ErrProductNotFound on an empty table.
	Last() (models.Product, error)
	List(f ProductFilter) ([]models.Product, error)
	// AdjustStock applies a delta guarded against negative stock. Returns
	// ErrInvalidStockChange when no row qualifies.
	AdjustStock(id, delta int) (models.Product, error)
	UpdateDetails(p models.Product) (models.Product, error)
	InventoryValue() (float64, error)
	LowStock(threshold int) ([]models.Product, error)
}
