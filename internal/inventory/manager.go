package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hendrawijaya/managestock/internal/models"
	"github.com/hendrawijaya/managestock/internal/repo"
	"go.uber.org/zap"
)

// ProductRef is a product identifier parsed once at the boundary: either a
// numeric id or a product code, never both.
type ProductRef struct {
	ID   int
	Code string
}

// ParseProductRef classifies a raw identifier. Numeric input resolves by
// id, anything else by exact product code.
func ParseProductRef(identifier string) (ProductRef, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return ProductRef{}, fmt.Errorf("%w: product identifier is required", ErrInvalidRequest)
	}
	if id, err := strconv.Atoi(identifier); err == nil {
		return ProductRef{ID: id}, nil
	}
	return ProductRef{Code: identifier}, nil
}

// TransactionResult is the summary returned to the caller after a
// transaction completes.
type TransactionResult struct {
	TxID        string  `json:"transaction_id"`
	ProductID   int     `json:"product_id"`
	ProductCode string  `json:"product_code"`
	Quantity    int     `json:"quantity"`
	Type        string  `json:"type"`
	TotalPrice  float64 `json:"total_price"`
}

// Manager orchestrates the inventory workflows: product registration,
// stock mutation and the transaction ledger.
type Manager struct {
	products     repo.ProductRepository
	transactions repo.TransactionRepository
	ledger       *Ledger
	pricer       *Pricer
	audit        AuditLog
	logger       *zap.Logger

	// codeMu serializes product-code generation; two concurrent
	// registrations without an explicit code would otherwise compute the
	// same next code. The unique index on product_code is the backstop.
	codeMu sync.Mutex
}

func NewManager(products repo.ProductRepository, transactions repo.TransactionRepository,
	ledger *Ledger, pricer *Pricer, audit AuditLog, logger *zap.Logger) *Manager {
	return &Manager{
		products:     products,
		transactions: transactions,
		ledger:       ledger,
		pricer:       pricer,
		audit:        audit,
		logger:       logger,
	}
}

// Resolve fetches the product a reference points at.
func (m *Manager) Resolve(ref ProductRef) (models.Product, error) {
	var (
		p   models.Product
		err error
	)
	if ref.Code != "" {
		p, err = m.products.GetByCode(ref.Code)
	} else {
		p, err = m.products.GetByID(ref.ID)
	}
	if errors.Is(err, repo.ErrProductNotFound) {
		return models.Product{}, ErrNotFound
	}
	return p, err
}

// NextProductCode derives the next sequential code from the most recently
// created product: P001 on an empty store, otherwise the numeric suffix
// plus one, zero-padded to at least three digits.
func (m *Manager) NextProductCode() (string, error) {
	last, err := m.products.Last()
	if errors.Is(err, repo.ErrProductNotFound) {
		return "P001", nil
	}
	if err != nil {
		return "", err
	}

	suffix := strings.TrimLeft(strings.TrimPrefix(last.Code, "P"), "0")
	num := 0
	if suffix != "" {
		num, _ = strconv.Atoi(suffix)
	}
	return fmt.Sprintf("P%03d", num+1), nil
}

// RegisterProduct creates a product, generating a sequential code when the
// caller supplies none.
func (m *Manager) RegisterProduct(code, name string, price float64, stock int, category string) (models.Product, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(category) == "" {
		return models.Product{}, fmt.Errorf("%w: name and category are required", ErrInvalidRequest)
	}
	if price < 0 || stock < 0 {
		return models.Product{}, fmt.Errorf("%w: price and stock cannot be negative", ErrInvalidRequest)
	}

	m.codeMu.Lock()
	defer m.codeMu.Unlock()

	if code == "" {
		next, err := m.NextProductCode()
		if err != nil {
			return models.Product{}, err
		}
		code = next
	}

	created, err := m.products.Create(models.Product{
		Code:      code,
		Name:      name,
		Price:     price,
		Stock:     stock,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	})
	if errors.Is(err, repo.ErrDuplicateProductCode) {
		return models.Product{}, fmt.Errorf("%w: product code %q already used", ErrInvalidRequest, code)
	}
	if err != nil {
		return models.Product{}, err
	}

	m.logger.Info("product registered",
		zap.String("product_code", created.Code),
		zap.Int("stock", created.Stock))
	return created, nil
}

// AdjustStock applies a stock mutation outside a transaction record, e.g.
// a manual correction or a restock.
func (m *Manager) AdjustStock(identifier string, quantity int, txType string) (models.Product, error) {
	if quantity <= 0 {
		return models.Product{}, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidRequest)
	}
	dir, err := NormalizeDirection(txType)
	if err != nil {
		return models.Product{}, err
	}

	ref, err := ParseProductRef(identifier)
	if err != nil {
		return models.Product{}, err
	}
	product, err := m.Resolve(ref)
	if err != nil {
		return models.Product{}, err
	}

	return m.ledger.ApplyDelta(product, quantity, dir)
}

// CreateTransaction runs the full workflow: validate, resolve, price,
// apply the stock mutation, persist the ledger entry and append the audit
// line. Once stock has been mutated there is no rollback path; a
// persistence failure after that point is surfaced, never swallowed.
func (m *Manager) CreateTransaction(txID, identifier string, quantity int, txType, customerRef string) (TransactionResult, error) {
	if strings.TrimSpace(txID) == "" {
		return TransactionResult{}, fmt.Errorf("%w: transactionId is required", ErrInvalidRequest)
	}
	if quantity <= 0 {
		return TransactionResult{}, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidRequest)
	}
	dir, err := NormalizeDirection(txType)
	if err != nil {
		return TransactionResult{}, err
	}

	ref, err := ParseProductRef(identifier)
	if err != nil {
		return TransactionResult{}, err
	}
	product, err := m.Resolve(ref)
	if err != nil {
		return TransactionResult{}, err
	}

	// Total is computed and stored for both directions.
	total, err := m.pricer.Total(product.Price, quantity, customerRef)
	if err != nil {
		return TransactionResult{}, err
	}

	updated, err := m.ledger.ApplyDelta(product, quantity, dir)
	if err != nil {
		return TransactionResult{}, err
	}

	_, err = m.transactions.Create(models.Transaction{
		TxID:       txID,
		ProductID:  updated.ID,
		Quantity:   quantity,
		Type:       string(dir),
		CustomerID: customerRef,
		TotalPrice: total,
		Date:       time.Now().UTC(),
	})
	if errors.Is(err, repo.ErrDuplicateTransaction) {
		m.logger.Error("duplicate transaction id after stock mutation",
			zap.String("transaction_id", txID),
			zap.String("product_code", updated.Code))
		return TransactionResult{}, ErrDuplicateTransaction
	}
	if err != nil {
		// Stock is already adjusted; flag the inconsistency for
		// operational remediation.
		m.logger.Error("stock adjusted but transaction not recorded",
			zap.String("transaction_id", txID),
			zap.String("product_code", updated.Code),
			zap.Error(err))
		return TransactionResult{}, fmt.Errorf("stock adjusted but transaction %s not recorded: %w", txID, err)
	}

	line := fmt.Sprintf("TID=%s PROD=%d/%s QTY=%d TYPE=%s TOTAL=%.2f",
		txID, updated.ID, updated.Code, quantity, dir, total)
	if err := m.audit.Append(line); err != nil {
		m.logger.Warn("failed to append audit log", zap.Error(err))
	}

	return TransactionResult{
		TxID:        txID,
		ProductID:   updated.ID,
		ProductCode: updated.Code,
		Quantity:    quantity,
		Type:        string(dir),
		TotalPrice:  total,
	}, nil
}

// LowStockThreshold exposes the configured threshold for read surfaces.
func (m *Manager) LowStockThreshold() int {
	return m.ledger.Threshold()
}

// Products lists products, optionally narrowed by category substring.
func (m *Manager) Products(category string, page, limit int) ([]models.Product, error) {
	return m.products.List(repo.ProductFilter{Category: category, Page: page, Limit: limit})
}

// InventoryValue returns the total value of all stock on hand.
func (m *Manager) InventoryValue() (float64, error) {
	return m.products.InventoryValue()
}

// LowStock lists products at or below the threshold; a nil threshold uses
// the configured default.
func (m *Manager) LowStock(threshold *int) ([]models.Product, error) {
	t := m.ledger.Threshold()
	if threshold != nil {
		t = *threshold
	}
	return m.products.LowStock(t)
}

// History returns a product's transactions, newest first.
func (m *Manager) History(identifier string) ([]models.Transaction, error) {
	ref, err := ParseProductRef(identifier)
	if err != nil {
		return nil, err
	}
	product, err := m.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return m.transactions.ByProduct(product.ID)
}

// RecentTransactions returns the latest ledger entries across products.
func (m *Manager) RecentTransactions(limit int) ([]models.Transaction, error) {
	return m.transactions.Recent(limit)
}

// UpdateProduct applies a partial field update outside the ledger flow.
// Zero-valued fields keep their current value.
func (m *Manager) UpdateProduct(identifier string, name *string, price *float64, stock *int, category *string) (models.Product, error) {
	ref, err := ParseProductRef(identifier)
	if err != nil {
		return models.Product{}, err
	}
	product, err := m.Resolve(ref)
	if err != nil {
		return models.Product{}, err
	}

	if name != nil {
		product.Name = *name
	}
	if price != nil {
		if *price < 0 {
			return models.Product{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidRequest)
		}
		product.Price = *price
	}
	if stock != nil {
		if *stock < 0 {
			return models.Product{}, fmt.Errorf("%w: stock cannot be negative", ErrInvalidRequest)
		}
		product.Stock = *stock
	}
	if category != nil {
		product.Category = *category
	}

	updated, err := m.products.UpdateDetails(product)
	if errors.Is(err, repo.ErrProductNotFound) {
		return models.Product{}, ErrNotFound
	}
	return updated, err
}
