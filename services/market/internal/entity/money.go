package entity

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places every stored amount keeps.
const MoneyScale = 2

// ValidateAmount accepts positive values with at most MoneyScale decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(MoneyScale)) {
		return ErrInvalidAmount.Withf("amount %s has more than %d decimal places", amount.String(), MoneyScale)
	}
	return nil
}
