// Package format форматирует деньги и числа так, как их показывает
// интерфейс: русская локаль, группы разрядов через пробел, запятая перед
// дробной частью.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	currencySign   = "₽"
	moneyPrecision = 2
)

//nolint:gochecknoglobals // skip
var locale = language.Russian

// Money "1 234,57 ₽". Сумма округляется до копеек до форматирования.
func Money(amount decimal.Decimal) string {
	return Number(amount.Round(moneyPrecision)) + " " + currencySign
}

// SignedMoney как Money, но неотрицательные суммы получают явный "+".
func SignedMoney(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return Money(amount)
	}

	return "+" + Money(amount)
}

// Number "1 234 567", дробная часть не длиннее двух знаков.
func Number(n decimal.Decimal) string {
	p := message.NewPrinter(locale)

	return p.Sprint(number.Decimal(n.Round(moneyPrecision).InexactFloat64(), number.MaxFractionDigits(moneyPrecision)))
}

// Int целое с группами разрядов.
func Int(n int) string {
	return message.NewPrinter(locale).Sprint(number.Decimal(n))
}

// Percent "55%". Доля 0..1 переводится в проценты и округляется до целого.
func Percent(fraction float64) string {
	return message.NewPrinter(locale).Sprint(number.Decimal(fraction*100, number.MaxFractionDigits(0))) + "%"
}
