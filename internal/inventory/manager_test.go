package inventory

import (
	"errors"
	"strings"
	"testing"

	"github.com/hendrawijaya/managestock/internal/models"
	"github.com/hendrawijaya/managestock/internal/repo"
	"go.uber.org/zap"
)

type recordingAudit struct {
	lines []string
}

func (r *recordingAudit) Append(line string) error {
	r.lines = append(r.lines, line)
	return nil
}

type failingAudit struct{}

func (failingAudit) Append(string) error { return errors.New("disk full") }

type testEnv struct {
	manager      *Manager
	products     *repo.InMemoryProductRepository
	transactions *repo.InMemoryTransactionRepository
	notifier     *Notifier
	audit        *recordingAudit
	events       *[]LowStockEvent
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	products := repo.NewInMemoryProductRepository()
	transactions := repo.NewInMemoryTransactionRepository()
	customers := repo.NewInMemoryCustomerRepository()
	customers.Add(models.Customer{ID: 1, Name: "Budi", Category: "VIP"})

	notifier := NewNotifier(zap.NewNop())
	var events []LowStockEvent
	notifier.Subscribe(func(e LowStockEvent) { events = append(events, e) })

	audit := &recordingAudit{}
	ledger := NewLedger(products, notifier, 5, zap.NewNop())
	pricer := NewPricer(customers)
	manager := NewManager(products, transactions, ledger, pricer, audit, zap.NewNop())

	return &testEnv{
		manager:      manager,
		products:     products,
		transactions: transactions,
		notifier:     notifier,
		audit:        audit,
		events:       &events,
	}
}

func TestNormalizeDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"add", DirectionAdd, false},
		{"buy", DirectionAdd, false},
		{"purchase", DirectionAdd, false},
		{"sell", DirectionSell, false},
		{"sale", DirectionSell, false},
		{"SELL", DirectionSell, false},
		{" Buy ", DirectionAdd, false},
		{"refund", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeDirection(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("NormalizeDirection(%q) error = %v, want ErrInvalidRequest", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("NormalizeDirection(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestParseProductRef(t *testing.T) {
	if _, err := ParseProductRef("  "); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("empty identifier: error = %v, want ErrInvalidRequest", err)
	}

	ref, err := ParseProductRef("42")
	if err != nil || ref.ID != 42 || ref.Code != "" {
		t.Errorf("ParseProductRef(42) = %+v, %v; want ID=42", ref, err)
	}

	ref, err = ParseProductRef("P042")
	if err != nil || ref.Code != "P042" || ref.ID != 0 {
		t.Errorf("ParseProductRef(P042) = %+v, %v; want Code=P042", ref, err)
	}
}

func TestNextProductCode(t *testing.T) {
	env := newTestEnv(t)

	code, err := env.manager.NextProductCode()
	if err != nil || code != "P001" {
		t.Fatalf("empty store: code = %q, %v; want P001", code, err)
	}

	env.manager.RegisterProduct("P041", "Gula", 12, 20, "staple")
	code, err = env.manager.NextProductCode()
	if err != nil || code != "P042" {
		t.Errorf("after P041: code = %q, %v; want P042", code, err)
	}
}

func TestNextProductCodeGrowsPastThreeDigits(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P999", "Kopi", 30, 10, "beverage")

	code, err := env.manager.NextProductCode()
	if err != nil || code != "P1000" {
		t.Errorf("after P999: code = %q, %v; want P1000", code, err)
	}
}

func TestRegisterProductGeneratesSequentialCodes(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.manager.RegisterProduct("", "Beras", 50, 12, "staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Code != "P001" {
		t.Errorf("first code = %q, want P001", first.Code)
	}

	second, err := env.manager.RegisterProduct("", "Gula", 12, 30, "staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Code != "P002" {
		t.Errorf("second code = %q, want P002", second.Code)
	}
}

func TestRegisterProductValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		prodName string
		price    float64
		stock    int
		category string
	}{
		{"missing name", "", 10, 5, "staple"},
		{"missing category", "Beras", 10, 5, ""},
		{"negative price", "Beras", -1, 5, "staple"},
		{"negative stock", "Beras", 10, -5, "staple"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.manager.RegisterProduct("", tt.prodName, tt.price, tt.stock, tt.category)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestRegisterProductDuplicateCode(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P010", "Beras", 50, 12, "staple")

	_, err := env.manager.RegisterProduct("P010", "Gula", 12, 30, "staple")
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("error = %v, want ErrInvalidRequest", err)
	}
}

func TestResolveByIDAndCode(t *testing.T) {
	env := newTestEnv(t)
	created, _ := env.manager.RegisterProduct("P010", "Beras", 50, 12, "staple")

	byID, err := env.manager.Resolve(ProductRef{ID: created.ID})
	if err != nil || byID.Code != "P010" {
		t.Errorf("resolve by id = %+v, %v", byID, err)
	}

	byCode, err := env.manager.Resolve(ProductRef{Code: "P010"})
	if err != nil || byCode.ID != created.ID {
		t.Errorf("resolve by code = %+v, %v", byCode, err)
	}

	if _, err := env.manager.Resolve(ProductRef{Code: "P999"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing product: error = %v, want ErrNotFound", err)
	}
}

func TestCreateTransactionSellFlow(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P010", "Beras", 50, 12, "staple")

	// Sell 3 of 12 at 50.00: stock 9, total 150.00, no low-stock event.
	result, err := env.manager.CreateTransaction("TX-1", "P010", 3, "sell", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != "sell" || result.Quantity != 3 || result.TotalPrice != 150.00 {
		t.Errorf("result = %+v, want type=sell qty=3 total=150.00", result)
	}

	product, _ := env.manager.Resolve(ProductRef{Code: "P010"})
	if product.Stock != 9 {
		t.Errorf("stock = %d, want 9", product.Stock)
	}
	if len(*env.events) != 0 {
		t.Errorf("got %d low-stock events, want 0", len(*env.events))
	}

	ledger, _ := env.transactions.ByProduct(result.ProductID)
	if len(ledger) != 1 || ledger[0].Type != "sell" || ledger[0].TotalPrice != 150.00 {
		t.Errorf("ledger = %+v, want one sell entry at 150.00", ledger)
	}

	// Sell 4 more: stock 5, total 200.00, low-stock event fires.
	result, err = env.manager.CreateTransaction("TX-2", "P010", 4, "sell", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalPrice != 200.00 {
		t.Errorf("total = %v, want 200.00", result.TotalPrice)
	}

	product, _ = env.manager.Resolve(ProductRef{Code: "P010"})
	if product.Stock != 5 {
		t.Errorf("stock = %d, want 5", product.Stock)
	}
	if len(*env.events) != 1 || (*env.events)[0].Stock != 5 {
		t.Fatalf("events = %+v, want one event with stock=5", *env.events)
	}
}

func TestCreateTransactionNormalizesSynonyms(t *testing.T) {
	env := newTestEnv(t)
	created, _ := env.manager.RegisterProduct("P010", "Beras", 50, 10, "staple")

	result, err := env.manager.CreateTransaction("TX-1", "P010", 5, "purchase", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Type != "add" {
		t.Errorf("type = %q, want add", result.Type)
	}

	product, _ := env.manager.Resolve(ProductRef{ID: created.ID})
	if product.Stock != 15 {
		t.Errorf("stock = %d, want 15", product.Stock)
	}
}

func TestCreateTransactionAppliesDiscounts(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P010", "Beras", 100, 50, "staple")

	// Bulk + VIP: 10% off 1000.
	result, err := env.manager.CreateTransaction("TX-1", "P010", 10, "sell", "Budi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TotalPrice != 900.00 {
		t.Errorf("total = %v, want 900.00", result.TotalPrice)
	}
}

func TestCreateTransactionInsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P010", "Beras", 50, 2, "staple")

	_, err := env.manager.CreateTransaction("TX-1", "P010", 3, "sell", "")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("error = %v, want ErrInsufficientStock", err)
	}

	product, _ := env.manager.Resolve(ProductRef{Code: "P010"})
	if product.Stock != 2 {
		t.Errorf("stock mutated on failed sell: %d, want 2", product.Stock)
	}
	if entries, _ := env.transactions.Recent(10); len(entries) != 0 {
		t.Errorf("ledger has %d entries after failed sell, want 0", len(entries))
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P010", "Beras", 50, 10, "staple")

	tests := []struct {
		name       string
		txID       string
		identifier string
		quantity   int
		txType     string
	}{
		{"missing transaction id", "", "P010", 1, "sell"},
		{"missing identifier", "TX-1", "", 1, "sell"},
		{"zero quantity", "TX-1", "P010", 0, "sell"},
		{"negative quantity", "TX-1", "P010", -2, "sell"},
		{"bad type", "TX-1", "P010", 1, "refund"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.manager.CreateTransaction(tt.txID, tt.identifier, tt.quantity, tt.txType, "")
			if !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("error = %v, want ErrInvalidRequest", err)
			}
		})
	}
}

func TestCreateTransactionDuplicateID(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P010", "Beras", 50, 20, "staple")

	if _, err := env.manager.CreateTransaction("TX-1", "P010", 1, "sell", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := env.manager.CreateTransaction("TX-1", "P010", 1, "sell", "")
	if !errors.Is(err, ErrDuplicateTransaction) {
		t.Errorf("error = %v, want ErrDuplicateTransaction", err)
	}
}

func TestCreateTransactionUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.manager.CreateTransaction("TX-1", "P404", 1, "sell", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateTransactionAppendsAuditLine(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P010", "Beras", 50, 12, "staple")

	result, err := env.manager.CreateTransaction("TX-1", "P010", 3, "sell", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(env.audit.lines) != 1 {
		t.Fatalf("audit lines = %d, want 1", len(env.audit.lines))
	}
	line := env.audit.lines[0]
	for _, want := range []string{"TID=TX-1", "QTY=3", "TYPE=sell", "TOTAL=150.00"} {
		if !strings.Contains(line, want) {
			t.Errorf("audit line %q missing %q", line, want)
		}
	}
	if !strings.Contains(line, "/"+result.ProductCode) {
		t.Errorf("audit line %q missing product code", line)
	}
}

func TestCreateTransactionSurvivesAuditFailure(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P010", "Beras", 50, 12, "staple")
	env.manager.audit = failingAudit{}

	if _, err := env.manager.CreateTransaction("TX-1", "P010", 3, "sell", ""); err != nil {
		t.Errorf("audit failure propagated: %v", err)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P010", "Beras", 50, 20, "staple")

	env.manager.CreateTransaction("TX-1", "P010", 2, "sell", "")
	env.manager.CreateTransaction("TX-2", "P010", 3, "sell", "")

	history, err := env.manager.History("P010")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}

	if _, err := env.manager.History("P404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing product history: error = %v, want ErrNotFound", err)
	}
}

func TestInventoryValue(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P001", "Beras", 50, 10, "staple") // 500
	env.manager.RegisterProduct("P002", "Gula", 12.5, 4, "staple") // 50

	total, err := env.manager.InventoryValue()
	if err != nil || total != 550 {
		t.Errorf("inventory value = %v, %v; want 550", total, err)
	}
}

func TestLowStockList(t *testing.T) {
	env := newTestEnv(t)
	env.manager.RegisterProduct("P001", "Beras", 50, 3, "staple")
	env.manager.RegisterProduct("P002", "Gula", 12, 10, "staple")

	low, err := env.manager.LowStock(nil)
	if err != nil || len(low) != 1 || low[0].Code != "P001" {
		t.Errorf("default threshold: %+v, %v; want only P001", low, err)
	}

	threshold := 10
	low, err = env.manager.LowStock(&threshold)
	if err != nil || len(low) != 2 {
		t.Errorf("threshold 10: got %d products, want 2", len(low))
	}
}
