package handlers

import (
	"net/http"
	"strconv"
)

// InventoryValueHandler godoc
// @Summary Total value of stock on hand
// @Tags reports
// @Produce json
// @Success 200 {object} InventoryValueResult
// @Failure 500 {string} string "Internal error"
// @Router /reports/inventory [get]
func InventoryValueHandler(w http.ResponseWriter, r *http.Request) {
	total, err := manager.InventoryValue()
	if err != nil {
		http.Error(w, "could not compute inventory value", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, InventoryValueResult{TotalInventoryValue: total})
}

// LowStockReportHandler godoc
// @Summary Products at or below the low-stock threshold
// @Tags reports
// @Produce json
// @Param threshold query int false "Override the configured threshold"
// @Success 200 {array} ProductResponse
// @Failure 500 {string} string "Internal error"
// @Router /reports/low-stock [get]
func LowStockReportHandler(w http.ResponseWriter, r *http.Request) {
	var threshold *int
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		t, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "invalid threshold", http.StatusBadRequest)
			return
		}
		threshold = &t
	}

	products, err := manager.LowStock(threshold)
	if err != nil {
		http.Error(w, "could not fetch low-stock products", http.StatusInternalServerError)
		return
	}

	effective := manager.LowStockThreshold()
	if threshold != nil {
		effective = *threshold
	}
	response := make([]ProductResponse, len(products))
	for i, p := range products {
		response[i] = toProductResponse(p, effective)
	}
	writeJSON(w, http.StatusOK, response)
}
