package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hendrawijaya/managestock/internal/http/handlers"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(CORSMiddleware)

	r.Group(func(pub chi.Router) {
		pub.Use(RateLimitMiddleware)
		pub.Post("/register", handlers.RegisterUserHandler)
		pub.Post("/login", handlers.LoginHandler)
		pub.Post("/refresh", handlers.RefreshHandler)
	})

	r.Get("/products", handlers.GetProductsHandler)
	r.Get("/products/{id}/history", handlers.ProductHistoryHandler)
	r.Get("/transactions", handlers.GetTransactionsHandler)
	r.Get("/reports/inventory", handlers.InventoryValueHandler)
	r.Get("/reports/low-stock", handlers.LowStockReportHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(priv chi.Router) {
		priv.Use(AuthMiddleware)
		priv.Post("/products", handlers.CreateProductHandler)
		priv.Put("/products/{id}", handlers.UpdateProductHandler)
		priv.Post("/products/import", handlers.ImportProductsHandler)
		priv.Post("/transactions", handlers.CreateTransactionHandler)
	})

	return r
}
