package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/hendrawijaya/managestock/internal/auth"
	api "github.com/hendrawijaya/managestock/internal/http"
	handler "github.com/hendrawijaya/managestock/internal/http/handlers"
	"github.com/hendrawijaya/managestock/internal/inventory"
	"github.com/hendrawijaya/managestock/internal/models"
	"github.com/hendrawijaya/managestock/internal/repo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminPassword = "sup3rsecret"

var (
	token        string
	productRepo  *repo.InMemoryProductRepository
	txRepo       *repo.InMemoryTransactionRepository
	customerRepo *repo.InMemoryCustomerRepository
	userRepo     *repo.InMemoryUserRepository
)

func init() {
	setupTestRepos()

	user, err := userRepo.GetByUsername("admin")
	if err != nil {
		panic(fmt.Sprintf("admin user missing: %v", err))
	}
	token, err = auth.GenerateToken(user)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos() {
	productRepo = repo.NewInMemoryProductRepository()
	txRepo = repo.NewInMemoryTransactionRepository()
	customerRepo = repo.NewInMemoryCustomerRepository()
	customerRepo.Add(models.Customer{ID: 1, Name: "Budi", Category: "vip"})
	userRepo = repo.NewInMemoryUserRepository()

	hash, _ := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	userRepo.Create(models.User{Username: "admin", PasswordHash: string(hash)})

	notifier := inventory.NewNotifier(zap.NewNop())
	ledger := inventory.NewLedger(productRepo, notifier, 5, zap.NewNop())
	pricer := inventory.NewPricer(customerRepo)
	manager := inventory.NewManager(productRepo, txRepo, ledger, pricer, inventory.NopAuditLog{}, zap.NewNop())

	handler.SetManager(manager)
	handler.SetTransactionRepo(txRepo)
	handler.SetUserRepo(userRepo)
	handler.SetRefreshStore(auth.NewRefreshStore(nil, time.Hour))
}

func clearAll() {
	productRepo.Clear()
	txRepo.Clear()
}

func doJSON(r http.Handler, method, path string, payload any, authed bool) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if authed {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/products", p, true)
}

func updateProduct(r http.Handler, identifier string, body handler.ProductUpdateRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPut, "/products/"+identifier, body, true)
}

func createTransaction(r http.Handler, tx handler.TransactionRequest) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/transactions", tx, true)
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func newRouter() http.Handler {
	return api.NewRouter()
}
