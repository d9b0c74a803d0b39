package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/hendrawijaya/managestock/internal/http/handlers"
)

func TestImportProductsHandler(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	csv := "product_code,name,price,stock,category\n" +
		"P100,Beras,50,10,staple\n" +
		",Gula,12.5,20,staple\n" +
		",NoCategory,5,3,\n"
	body, contentType := multipartCSV(csv, "products.csv")

	req := httptest.NewRequest(http.MethodPost, "/products/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.ImportProductsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ImportedProductsCount != 2 {
		t.Errorf("expected 2 imported, got %d", resp.ImportedProductsCount)
	}
	if len(resp.Errors) != 1 {
		t.Fatalf("expected 1 row error, got %d", len(resp.Errors))
	}
	if resp.Errors[0].Field != "row 3" {
		t.Errorf("expected failure on row 3, got %q", resp.Errors[0].Field)
	}

	// The explicit code survived and the blank one was generated.
	if got := currentStock(t, r, "P100"); got != 10 {
		t.Errorf("P100 stock = %d, want 10", got)
	}
}

func TestImportProductsHandler_MissingColumn(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	body, contentType := multipartCSV("name,price\nBeras,50\n", "bad.csv")
	req := httptest.NewRequest(http.MethodPost, "/products/import", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing columns, got %d", w.Code)
	}
}

func TestImportProductsHandler_FileRequired(t *testing.T) {
	t.Cleanup(clearAll)
	r := newRouter()

	w := doJSON(r, http.MethodPost, "/products/import", nil, true)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a file, got %d", w.Code)
	}
}
