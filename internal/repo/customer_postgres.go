package repo

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/hendrawijaya/managestock/internal/models"
)

type PostgresCustomerRepository struct {
	db *sql.DB
}

func NewPostgresCustomerRepository(db *sql.DB) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) GetByIDOrName(ref string) (models.Customer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	query := `SELECT id, name, category FROM customers WHERE name = $1 LIMIT 1`
	args := []any{ref}
	if id, err := strconv.Atoi(ref); err == nil {
		query = `SELECT id, name, category FROM customers WHERE id = $1 OR name = $2 LIMIT 1`
		args = []any{id, ref}
	}

	var c models.Customer
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Customer{}, ErrCustomerNotFound
	}
	return c, err
}
