package repo

import "github.com/hendrawijaya/managestock/internal/models"

// CustomerRepository looks up customers for discount eligibility only.
type CustomerRepository interface {
	// GetByIDOrName resolves a customer reference that may be a numeric id
	// or a customer name.
	GetByIDOrName(ref string) (models.Customer, error)
}
