package inventory

import (
	"errors"
	"fmt"

	"github.com/hendrawijaya/managestock/internal/models"
	"github.com/hendrawijaya/managestock/internal/repo"
	"go.uber.org/zap"
)

// DefaultLowStockThreshold is the inclusive stock level at or below which
// a low-stock event fires, unless configured otherwise.
const DefaultLowStockThreshold = 5

// Ledger applies stock deltas and raises low-stock events after the
// mutation is durably recorded. The negative-stock guard lives in the
// store update itself, so two concurrent sells cannot both pass an
// in-process check and drive stock below zero.
type Ledger struct {
	products  repo.ProductRepository
	notifier  *Notifier
	threshold int
	logger    *zap.Logger
}

func NewLedger(products repo.ProductRepository, notifier *Notifier, threshold int, logger *zap.Logger) *Ledger {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &Ledger{products: products, notifier: notifier, threshold: threshold, logger: logger}
}

func (l *Ledger) Threshold() int { return l.threshold }

// ApplyDelta mutates the product's stock by quantity in the given
// direction and returns the refreshed snapshot. The caller has already
// resolved the product, so a rejected sell means insufficient stock.
func (l *Ledger) ApplyDelta(product models.Product, quantity int, dir Direction) (models.Product, error) {
	if quantity <= 0 {
		return models.Product{}, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidRequest)
	}

	delta := quantity
	if dir == DirectionSell {
		delta = -quantity
	}

	updated, err := l.products.AdjustStock(product.ID, delta)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidStockChange) {
			if dir == DirectionSell {
				return models.Product{}, fmt.Errorf("%w: product %s has %d in stock, requested %d",
					ErrInsufficientStock, product.Code, product.Stock, quantity)
			}
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}

	if updated.Stock <= l.threshold {
		l.logger.Warn("stock at or below threshold",
			zap.String("product_code", updated.Code),
			zap.Int("stock", updated.Stock),
			zap.Int("threshold", l.threshold))
		l.notifier.Publish(LowStockEvent{
			ProductID:   updated.ID,
			ProductCode: updated.Code,
			Stock:       updated.Stock,
		})
	}

	return updated, nil
}
