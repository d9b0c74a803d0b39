package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CreateProductHandler godoc
// @Summary Register a new product
// @Description Adds a product; the product code is generated when omitted
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} map[string]string
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	created, err := manager.RegisterProduct(req.Code, req.Name, req.Price, req.Stock, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductResponse(created, manager.LowStockThreshold()))
}

// GetProductsHandler godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param category query string false "Category filter (substring match)"
// @Param page query int false "Page number, 1-based"
// @Param limit query int false "Page size"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	products, err := manager.Products(q.Get("category"), page, limit)
	if err != nil {
		http.Error(w, "could not fetch products", http.StatusInternalServerError)
		return
	}

	threshold := manager.LowStockThreshold()
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p, threshold)
	}
	writeJSON(w, http.StatusOK, response)
}

// UpdateProductHandler godoc
// @Summary Adjust stock or update product fields
// @Description With quantity and transactionType the body is a stock adjustment; otherwise a partial field update
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product id or code"
// @Param update body ProductUpdateRequest true "Stock adjustment or field update"
// @Success 200 {object} ProductResponse
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Insufficient stock"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "id")

	var req ProductUpdateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if req.Quantity != nil && req.TransactionType != "" {
		product, err := manager.AdjustStock(identifier, *req.Quantity, req.TransactionType)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(product, manager.LowStockThreshold()))
		return
	}

	if req.Name == nil && req.Price == nil && req.Stock == nil && req.Category == nil {
		http.Error(w, "no fields to update", http.StatusBadRequest)
		return
	}

	product, err := manager.UpdateProduct(identifier, req.Name, req.Price, req.Stock, req.Category)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product, manager.LowStockThreshold()))
}

// ProductHistoryHandler godoc
// @Summary Get a product's transaction history, newest first
// @Tags products
// @Produce json
// @Param id path string true "Product id or code"
// @Success 200 {array} models.Transaction
// @Failure 404 {string} string "Not found"
// @Router /products/{id}/history [get]
func ProductHistoryHandler(w http.ResponseWriter, r *http.Request) {
	history, err := manager.History(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, history); err != nil {
		logger.Warn("failed to encode history response", zap.Error(err))
	}
}
