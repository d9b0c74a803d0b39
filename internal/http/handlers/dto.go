package handlers

type ProductRequest struct {
	Code     string  `json:"product_code,omitempty"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}

type ProductResponse struct {
	Id        int     `json:"id"`
	Code      string  `json:"product_code"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	Category  string  `json:"category"`
	LowStock  bool    `json:"low_stock,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// ProductUpdateRequest drives PUT /products/{id}. When Quantity and
// TransactionType are both present the request is a stock adjustment;
// otherwise the remaining fields are a partial update.
type ProductUpdateRequest struct {
	Quantity        *int    `json:"quantity,omitempty"`
	TransactionType string  `json:"transactionType,omitempty"`
	Name            *string `json:"name,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Stock           *int    `json:"stock,omitempty"`
	Category        *string `json:"category,omitempty"`
}

type TransactionRequest struct {
	TransactionID string `json:"transactionId"`
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	Type          string `json:"type"`
	CustomerID    string `json:"customerId,omitempty"`
}

type TransactionResponse struct {
	Message       string  `json:"message,omitempty"`
	TransactionID string  `json:"transaction_id"`
	ProductID     int     `json:"product_id"`
	ProductCode   string  `json:"product_code"`
	Quantity      int     `json:"quantity"`
	Type          string  `json:"type"`
	TotalPrice    float64 `json:"total_price"`
}

type InventoryValueResult struct {
	TotalInventoryValue float64 `json:"total_inventory_value"`
}

type UserLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ImportProductsResult struct {
	ImportedProductsCount int                      `json:"imported"`
	Errors                []ProductValidationError `json:"errors"`
}
