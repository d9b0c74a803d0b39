package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hendrawijaya/managestock/internal/models"
)

const productColumns = "id, product_code, name, price, stock, category, created_at"

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (product_code, name, price, stock, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.Code, p.Name, p.Price, p.Stock, p.Category, p.CreatedAt).Scan(&p.ID)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicateProductCode
	}
	return p, err
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.getOne(query, id)
}

func (r *PostgresProductRepository) GetByCode(code string) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_code = $1`
	return r.getOne(query, code)
}

func (r *PostgresProductRepository) Last() (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id DESC LIMIT 1`
	return r.getOne(query)
}

func (r *PostgresProductRepository) getOne(query string, args ...any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.Stock, &p.Category, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) List(f ProductFilter) ([]models.Product, error) {
	args := []any{}
	query := `SELECT ` + productColumns + ` FROM products`
	argIdx := 1

	if f.Category != "" {
		query += fmt.Sprintf(" WHERE category ILIKE $%d", argIdx)
		args = append(args, "%"+f.Category+"%")
		argIdx++
	}
	query += " ORDER BY id"

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++

	page := f.Page
	if page < 1 {
		page = 1
	}
	if offset := (page - 1) * limit; offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, offset)
	}

	return r.queryProducts(query, args...)
}

// AdjustStock applies the delta with a guard clause so that concurrent
// sells cannot drive stock negative. No row means the guard rejected the
// change (or the product is gone).
func (r *PostgresProductRepository) AdjustStock(id, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $1
		WHERE id = $2 AND stock + $1 >= 0
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, delta, id).
		Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.Stock, &p.Category, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrInvalidStockChange
	}
	return p, err
}

func (r *PostgresProductRepository) UpdateDetails(p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, price = $2, stock = $3, category = $4 WHERE id = $5
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var out models.Product
	err := r.db.QueryRowContext(ctx, query, p.Name, p.Price, p.Stock, p.Category, p.ID).
		Scan(&out.ID, &out.Code, &out.Name, &out.Price, &out.Stock, &out.Category, &out.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return out, err
}

func (r *PostgresProductRepository) InventoryValue() (float64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `SELECT SUM(price * stock) FROM products`).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Float64, nil
}

func (r *PostgresProductRepository) LowStock(threshold int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock <= $1 ORDER BY stock ASC`
	return r.queryProducts(query, threshold)
}

func (r *PostgresProductRepository) queryProducts(query string, args ...any) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Price, &p.Stock, &p.Category, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
