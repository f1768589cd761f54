// Package money holds the rounding and formatting rules for currency amounts.
// Amounts are decimal.Decimal throughout; they are rounded to two places only
// where a value is persisted or printed.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const Places = 2

var hundred = decimal.NewFromInt(100)

// Round rounds half away from zero to two decimal places.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}

// Percent returns rate percent of amount, rounded.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(rate).Div(hundred))
}

// Sum adds amounts without intermediate rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, amounts...)
}

// Format renders amount with the currency symbol, e.g. "₹1,234.50".
func Format(symbol string, amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := Round(amount).StringFixed(Places)
	whole, frac := fixed[:len(fixed)-Places-1], fixed[len(fixed)-Places:]

	return fmt.Sprintf("%s%s%s.%s", sign, symbol, group(whole), frac)
}

func group(digits string) string {
	const size = 3

	if len(digits) <= size {
		return digits
	}

	head := len(digits) % size
	if head == 0 {
		head = size
	}

	out := digits[:head]
	for i := head; i < len(digits); i += size {
		out += "," + digits[i:i+size]
	}

	return out
}
