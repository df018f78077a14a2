package portfolio

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used by FormatCurrency.
const DefaultCurrency = money.INR

// Formatter turns amounts and returns into display strings. Output does not
// depend on the process locale: thousands are separated by the currency's
// separator and amounts are rounded half away from zero to the currency fraction.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter returns a formatter for the ISO 4217 code. Unknown codes fall back
// to DefaultCurrency.
func NewFormatter(code string) Formatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || money.GetCurrency(code) == nil {
		code = DefaultCurrency
	}
	// the Money constructor is the only way to get a never nil currency.
	return Formatter{currency: money.New(0, code).Currency()}
}

// Code returns the ISO code of the formatter currency.
func (f Formatter) Code() string { return f.cur().Code }

func (f Formatter) cur() *money.Currency {
	if f.currency == nil {
		return defaultFormatter.currency
	}
	return f.currency
}

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// Currency formats amount with the currency symbol, e.g. "₹1,234.50". Amounts
// whose minor units do not fit an int64 are printed plainly with the ISO code,
// e.g. "100000000000000000000.00 INR".
func (f Formatter) Currency(amount decimal.Decimal) string {
	cur := f.cur()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	if minor.Abs().GreaterThan(maxMinorUnits) {
		return amount.StringFixed(int32(cur.Fraction)) + " " + cur.Code
	}
	return cur.Formatter().Format(minor.IntPart())
}

// SignedCurrency is Currency with an explicit "+" for positive amounts.
func (f Formatter) SignedCurrency(amount decimal.Decimal) string {
	s := f.Currency(amount)
	if amount.Round(int32(f.cur().Fraction)).IsPositive() {
		return "+" + s
	}
	return s
}

// Percentage formats a return with two decimals, e.g. "-3.46%".
func (f Formatter) Percentage(value decimal.Decimal) string {
	return FormatPercentage(value)
}

var defaultFormatter = NewFormatter(DefaultCurrency)

func FormatCurrency(amount decimal.Decimal) string {
	return defaultFormatter.Currency(amount)
}

func FormatSignedCurrency(amount decimal.Decimal) string {
	return defaultFormatter.SignedCurrency(amount)
}

func FormatPercentage(value decimal.Decimal) string {
	s := value.StringFixed(2)
	if s == "-0.00" {
		s = "0.00"
	}
	return s + "%"
}
