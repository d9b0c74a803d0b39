package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrProductNotFound is returned when a product lookup matches no row.
	ErrProductNotFound = errors.New("product not found")
	// ErrCustomerNotFound is returned when a customer lookup matches no row.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidStockChange is returned when a guarded stock update matches
	// no row, either because the product is gone or because the change
	// would drive stock negative.
	ErrInvalidStockChange = errors.New("invalid stock change")
	// ErrDuplicateTransaction is returned when a transaction id is already
	// recorded in the ledger.
	ErrDuplicateTransaction = errors.New("transaction id already used")
	// ErrDuplicateProductCode is returned when a product code collides with
	// an existing one.
	ErrDuplicateProductCode = errors.New("product code already used")
	// ErrDuplicateUser is returned when a username is already registered.
	ErrDuplicateUser = errors.New("username already exists")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
