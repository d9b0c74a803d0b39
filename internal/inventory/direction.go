package inventory

import (
	"fmt"
	"strings"
)

// Direction is the normalized mutation sense of a transaction.
type Direction string

const (
	DirectionAdd  Direction = "add"
	DirectionSell Direction = "sell"
)

// NormalizeDirection maps the caller-facing type synonyms onto a Direction.
func NormalizeDirection(txType string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(txType)) {
	case "add", "buy", "purchase":
		return DirectionAdd, nil
	case "sell", "sale":
		return DirectionSell, nil
	default:
		return "", fmt.Errorf("%w: unknown transaction type %q", ErrInvalidRequest, txType)
	}
}
