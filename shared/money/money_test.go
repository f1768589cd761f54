package money_test

import (
	"testing"

	"hotelos/shared/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		rate   string
		want   string
	}{
		{name: "half of five percent", amount: "1000", rate: "2.5", want: "25"},
		{name: "rounds half up", amount: "0.50", rate: "1", want: "0.01"},
		{name: "rounds down", amount: "0.40", rate: "1", want: "0"},
		{name: "zero base", amount: "0", rate: "2.5", want: "0"},
		{name: "fractional base", amount: "65", rate: "2.5", want: "1.63"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.Percent(d(tt.amount), d(tt.rate))

			assert.True(t, d(tt.want).Equal(got), "got %s want %s", got, tt.want)
		})
	}
}

func TestSum(t *testing.T) {
	assert.True(t, d("65").Equal(money.Sum(d("100"), d("25"), d("-60"))))
	assert.True(t, decimal.Zero.Equal(money.Sum()))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "0", want: "₹0.00"},
		{amount: "65", want: "₹65.00"},
		{amount: "1234.5", want: "₹1,234.50"},
		{amount: "1234567.891", want: "₹1,234,567.89"},
		{amount: "-42.1", want: "-₹42.10"},
		{amount: "100", want: "₹100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, money.Format("₹", d(tt.amount)))
		})
	}
}
