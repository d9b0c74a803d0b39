package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/hendrawijaya/managestock/internal/models"
)

const transactionColumns = "id, transaction_id, product_id, quantity, type, COALESCE(customer_id, ''), total_price, date"

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) Create(t models.Transaction) (models.Transaction, error) {
	query := `INSERT INTO transactions (transaction_id, product_id, quantity, type, customer_id, total_price, date)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		t.TxID, t.ProductID, t.Quantity, t.Type, t.CustomerID, t.TotalPrice, t.Date).Scan(&t.ID)
	if isUniqueViolation(err) {
		return models.Transaction{}, ErrDuplicateTransaction
	}
	return t, err
}

func (r *PostgresTransactionRepository) Exists(txID string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1)`, txID).Scan(&exists)
	return exists, err
}

func (r *PostgresTransactionRepository) ByProduct(productID int) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE product_id = $1 ORDER BY date DESC`
	return r.queryTransactions(query, productID)
}

func (r *PostgresTransactionRepository) Recent(limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY date DESC LIMIT $1`
	return r.queryTransactions(query, limit)
}

func (r *PostgresTransactionRepository) queryTransactions(query string, args ...any) ([]models.Transaction, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.TxID, &t.ProductID, &t.Quantity, &t.Type, &t.CustomerID, &t.TotalPrice, &t.Date); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
