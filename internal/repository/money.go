package repository

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/shopcore/checkout/internal/domain"
	"golang.org/x/text/currency"
)

// parseMoney maps a numeric-as-text amount and an ISO currency code scanned
// from the database into a domain value.
func parseMoney(amount, code string) (domain.Money, error) {
	parsedAmount, err := decimal.NewFromString(amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("amount[%s] is not valid: %w", amount, err)
	}

	parsedCurrency, err := currency.ParseISO(code)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return domain.Money{Amount: parsedAmount, Currency: parsedCurrency}, nil
}

// parseNullableMoney handles the legacy case of a cart line without a frozen
// price: both columns NULL maps to nil.
func parseNullableMoney(amount, code *string) (*domain.Money, error) {
	if amount == nil || code == nil {
		return nil, nil
	}

	money, err := parseMoney(*amount, *code)
	if err != nil {
		return nil, fmt.Errorf("parseMoney: %w", err)
	}

	return &money, nil
}
