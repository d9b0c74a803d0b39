package handlers

import (
	"github.com/hendrawijaya/managestock/internal/auth"
	"github.com/hendrawijaya/managestock/internal/inventory"
	"github.com/hendrawijaya/managestock/internal/redissvc"
	"github.com/hendrawijaya/managestock/internal/repo"
	"go.uber.org/zap"
)

var (
	manager      *inventory.Manager
	txRepo       repo.TransactionRepository
	userRepo     repo.UserRepository
	txGuard      *redissvc.TxGuard
	refreshStore *auth.RefreshStore
	logger       = zap.NewNop()
)

func SetManager(m *inventory.Manager) {
	manager = m
}

func SetTransactionRepo(r repo.TransactionRepository) {
	txRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

// SetTxGuard installs the Redis duplicate-id guard; nil disables it and
// the handlers fall back to the store-level check alone.
func SetTxGuard(g *redissvc.TxGuard) {
	txGuard = g
}

func SetRefreshStore(s *auth.RefreshStore) {
	refreshStore = s
}

func SetLogger(l *zap.Logger) {
	logger = l
}
