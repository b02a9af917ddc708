package currency

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultCode = "KES"

// FormatError reports a money value that cannot be printed on a document.
type FormatError struct {
	Value float64
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("currency: cannot format non-finite amount %v", e.Value)
}

type Formatter struct {
	tag  language.Tag
	code string
}

func NewFormatter(tag language.Tag, code string) *Formatter {
	if code == "" {
		code = DefaultCode
	}
	return &Formatter{tag: tag, code: code}
}

// NewFormatterFromLocale parses a BCP 47 locale such as "en-KE"; unknown
// locales fall back to English grouping.
func NewFormatterFromLocale(locale, code string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return NewFormatter(tag, code)
}

var defaultFormatter = NewFormatter(language.English, DefaultCode)

func Default() *Formatter {
	return defaultFormatter
}

// Format renders amount with two decimals and locale grouping.
// NaN and ±Inf are coerced to 0.00.
func Format(amount float64) string {
	return defaultFormatter.Format(amount)
}

func (f *Formatter) Code() string {
	return f.code
}

func (f *Formatter) Format(amount float64) string {
	s, err := f.FormatStrict(amount)
	if err != nil {
		return f.print(0)
	}
	return s
}

func (f *Formatter) FormatStrict(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "", &FormatError{Value: amount}
	}
	return f.print(amount), nil
}

// WithCode prefixes the formatted amount with the currency code, e.g. "KES 30,000.00".
func (f *Formatter) WithCode(amount float64) string {
	return f.code + " " + f.Format(amount)
}

func (f *Formatter) print(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(2)
	if rounded.IsZero() {
		// avoids "-0.00"
		rounded = decimal.Zero
	}
	return message.NewPrinter(f.tag).Sprintf("%.2f", rounded.InexactFloat64())
}

// Sum adds amounts in decimal space so long ledgers do not drift.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.Round(2).InexactFloat64()
}

// Mul multiplies quantity by unit price, rounded to cents.
func Mul(quantity, unitPrice float64) float64 {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).Round(2).InexactFloat64()
}
