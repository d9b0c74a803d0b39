package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/hendrawijaya/managestock/internal/inventory"
	"go.uber.org/zap"
)

// CreateTransactionHandler godoc
// @Summary Create a buy/sell transaction
// @Description Rejects duplicate transaction ids before any stock is mutated
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param transaction body TransactionRequest true "Transaction to create"
// @Success 201 {object} TransactionResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Duplicate id or insufficient stock"
// @Router /transactions [post]
func CreateTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req TransactionRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.TransactionID) == "" || strings.TrimSpace(req.ProductID) == "" || req.Type == "" {
		http.Error(w, "transactionId, productId and type are required", http.StatusBadRequest)
		return
	}

	// Duplicate detection happens here, ahead of the workflow, so a
	// repeated id never reaches the stock mutation.
	if txGuard != nil {
		ok, err := txGuard.Reserve(r.Context(), req.TransactionID)
		if err != nil {
			logger.Warn("transaction guard unavailable", zap.Error(err))
		} else if !ok {
			http.Error(w, "transactionId already used", http.StatusConflict)
			return
		}
	}
	exists, err := txRepo.Exists(req.TransactionID)
	if err != nil {
		http.Error(w, "could not verify transaction id", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "transactionId already used", http.StatusConflict)
		return
	}

	result, err := manager.CreateTransaction(req.TransactionID, req.ProductID, req.Quantity, req.Type, req.CustomerID)
	if err != nil {
		// Free the reservation so the id can be retried, unless the
		// ledger itself already holds it.
		if txGuard != nil && !errors.Is(err, inventory.ErrDuplicateTransaction) {
			if relErr := txGuard.Release(r.Context(), req.TransactionID); relErr != nil {
				logger.Warn("failed to release transaction reservation", zap.Error(relErr))
			}
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, TransactionResponse{
		Message:       "transaction created",
		TransactionID: result.TxID,
		ProductID:     result.ProductID,
		ProductCode:   result.ProductCode,
		Quantity:      result.Quantity,
		Type:          result.Type,
		TotalPrice:    result.TotalPrice,
	})
}

// GetTransactionsHandler godoc
// @Summary List recent transactions, newest first
// @Tags transactions
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {array} models.Transaction
// @Failure 500 {string} string "Internal error"
// @Router /transactions [get]
func GetTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	transactions, err := manager.RecentTransactions(limit)
	if err != nil {
		http.Error(w, "could not fetch transactions", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}
