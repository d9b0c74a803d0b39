package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	handler "github.com/hendrawijaya/managestock/internal/http/handlers"
	"github.com/hendrawijaya/managestock/internal/models"
)

func TestCreateTransactionHandler_SellFlow(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	createProduct(r, handler.ProductRequest{Code: "P010", Name: "Beras", Price: 50, Stock: 12, Category: "staple"})

	w := createTransaction(r, handler.TransactionRequest{
		TransactionID: "TX-100", ProductID: "P010", Quantity: 3, Type: "sell",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.TransactionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.TotalPrice != 150.00 {
		t.Errorf("expected total 150.00, got %v", resp.TotalPrice)
	}
	if resp.Type != "sell" {
		t.Errorf("expected type sell, got %q", resp.Type)
	}
	if resp.ProductCode != "P010" {
		t.Errorf("expected product code P010, got %q", resp.ProductCode)
	}
}

func TestCreateTransactionHandler_DuplicateID(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	createProduct(r, handler.ProductRequest{Code: "P010", Name: "Beras", Price: 50, Stock: 20, Category: "staple"})

	first := createTransaction(r, handler.TransactionRequest{
		TransactionID: "TX-1", ProductID: "P010", Quantity: 2, Type: "sell",
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	stockBefore := currentStock(t, r, "P010")

	dup := createTransaction(r, handler.TransactionRequest{
		TransactionID: "TX-1", ProductID: "P010", Quantity: 2, Type: "sell",
	})
	if dup.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate id, got %d", dup.Code)
	}

	// The duplicate was rejected before any stock mutation.
	if after := currentStock(t, r, "P010"); after != stockBefore {
		t.Errorf("stock changed on duplicate: %d -> %d", stockBefore, after)
	}
}

func TestCreateTransactionHandler_VIPDiscount(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	createProduct(r, handler.ProductRequest{Code: "P010", Name: "Beras", Price: 100, Stock: 50, Category: "staple"})

	w := createTransaction(r, handler.TransactionRequest{
		TransactionID: "TX-1", ProductID: "P010", Quantity: 10, Type: "sell", CustomerID: "Budi",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.TransactionResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.TotalPrice != 900.00 {
		t.Errorf("expected total 900.00 with bulk+vip discount, got %v", resp.TotalPrice)
	}
}

func TestCreateTransactionHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	createProduct(r, handler.ProductRequest{Code: "P010", Name: "Beras", Price: 50, Stock: 10, Category: "staple"})

	tests := []struct {
		name       string
		payload    handler.TransactionRequest
		expectCode int
	}{
		{
			name:       "missing transaction id",
			payload:    handler.TransactionRequest{ProductID: "P010", Quantity: 1, Type: "sell"},
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "missing product",
			payload:    handler.TransactionRequest{TransactionID: "TX-1", Quantity: 1, Type: "sell"},
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "invalid type",
			payload:    handler.TransactionRequest{TransactionID: "TX-1", ProductID: "P010", Quantity: 1, Type: "refund"},
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "zero quantity",
			payload:    handler.TransactionRequest{TransactionID: "TX-1", ProductID: "P010", Quantity: 0, Type: "sell"},
			expectCode: http.StatusBadRequest,
		},
		{
			name:       "unknown product",
			payload:    handler.TransactionRequest{TransactionID: "TX-1", ProductID: "P404", Quantity: 1, Type: "sell"},
			expectCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createTransaction(r, tt.payload)
			if w.Code != tt.expectCode {
				t.Errorf("expected status %d, got %d", tt.expectCode, w.Code)
			}
		})
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	createProduct(r, handler.ProductRequest{Code: "P010", Name: "Beras", Price: 50, Stock: 20, Category: "staple"})
	createTransaction(r, handler.TransactionRequest{TransactionID: "TX-1", ProductID: "P010", Quantity: 2, Type: "sell"})
	createTransaction(r, handler.TransactionRequest{TransactionID: "TX-2", ProductID: "P010", Quantity: 3, Type: "buy"})

	w := doJSON(r, http.MethodGet, "/transactions", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var transactions []models.Transaction
	if err := json.NewDecoder(w.Body).Decode(&transactions); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if len(transactions) != 2 {
		t.Errorf("expected 2 transactions, got %d", len(transactions))
	}
}

func currentStock(t *testing.T, r http.Handler, code string) int {
	t.Helper()

	w := doJSON(r, http.MethodGet, "/products", nil, false)
	var products []handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&products); err != nil {
		t.Fatalf("error decoding products: %v", err)
	}
	for _, p := range products {
		if p.Code == code {
			return p.Stock
		}
	}
	t.Fatalf("product %s not found", code)
	return 0
}
