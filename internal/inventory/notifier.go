package inventory

import (
	"sync"

	"go.uber.org/zap"
)

// LowStockEvent is published when a stock mutation leaves a product at or
// below the configured threshold. It is not persisted.
type LowStockEvent struct {
	ProductID   int    `json:"product_id"`
	ProductCode string `json:"product_code"`
	Stock       int    `json:"stock"`
}

// LowStockHandler receives low-stock events.
type LowStockHandler func(LowStockEvent)

// Notifier is the process-wide publish/subscribe point for low-stock
// events. Dispatch is synchronous; there is no replay for late subscribers.
type Notifier struct {
	mu       sync.RWMutex
	handlers []LowStockHandler
	logger   *zap.Logger
}

func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// Subscribe registers a handler for subsequent events.
func (n *Notifier) Subscribe(h LowStockHandler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, h)
}

// Publish delivers the event to all current subscribers on the calling
// goroutine. A panicking subscriber must not unwind the stock mutation
// that already committed, so panics are contained per handler.
func (n *Notifier) Publish(e LowStockEvent) {
	n.mu.RLock()
	handlers := make([]LowStockHandler, len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.RUnlock()

	for _, h := range handlers {
		n.dispatch(h, e)
	}
}

func (n *Notifier) dispatch(h LowStockHandler, e LowStockEvent) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("low-stock subscriber panicked",
				zap.String("product_code", e.ProductCode),
				zap.Any("panic", r))
		}
	}()
	h(e)
}
