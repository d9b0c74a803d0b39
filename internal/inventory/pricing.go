package inventory

import (
	"errors"
	"math"
	"strings"

	"github.com/hendrawijaya/managestock/internal/repo"
)

const (
	bulkQuantity        = 10
	bulkDiscountPercent = 5
	vipDiscountPercent  = 5
	vipCategory         = "vip"
)

// Pricer computes discount-adjusted totals. Discounts accumulate
// additively: 5% for bulk quantity, 5% more for a VIP customer.
type Pricer struct {
	customers repo.CustomerRepository
}

func NewPricer(customers repo.CustomerRepository) *Pricer {
	return &Pricer{customers: customers}
}

// Total returns the price for quantity units at unitPrice, rounded to two
// decimals. A customer reference that resolves to no customer simply earns
// no VIP discount.
func (p *Pricer) Total(unitPrice float64, quantity int, customerRef string) (float64, error) {
	discount := 0.0
	if quantity >= bulkQuantity {
		discount += bulkDiscountPercent
	}

	if customerRef != "" {
		customer, err := p.customers.GetByIDOrName(customerRef)
		switch {
		case err == nil:
			if strings.EqualFold(customer.Category, vipCategory) {
				discount += vipDiscountPercent
			}
		case errors.Is(err, repo.ErrCustomerNotFound):
			// unknown customer, no discount
		default:
			return 0, err
		}
	}

	gross := unitPrice * float64(quantity)
	return Round2(gross * (1 - discount/100)), nil
}

// Round2 rounds to two decimals, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
