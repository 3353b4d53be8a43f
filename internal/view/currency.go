package view

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type CurrencyFormatter interface {
	Format(amount decimal.Decimal) string
}

type localeFormatter struct {
	symbol  string
	group   string
	decimal string
}

// NewBRLFormatter formats amounts as Brazilian reais, e.g. "R$ 1.234,50".
func NewBRLFormatter() CurrencyFormatter {
	printer := message.NewPrinter(language.BrazilianPortuguese)
	return &localeFormatter{
		symbol:  "R$",
		group:   separator(printer.Sprintf("%d", 1000), "."),
		decimal: separator(printer.Sprintf("%.1f", 0.5), ","),
	}
}

// Format works on the decimal digits directly so amounts beyond float64
// precision keep every cent.
func (f *localeFormatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)

	sign := ""
	if rounded.Sign() < 0 {
		sign = "-"
	}

	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	return sign + f.symbol + " " + groupThousands(whole, f.group) + f.decimal + frac
}

// separator extracts the non-digit part of a locale-formatted sample.
func separator(sample, fallback string) string {
	sep := strings.TrimFunc(sample, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
	if sep == "" {
		return fallback
	}
	return sep
}

func groupThousands(digits, sep string) string {
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}

	var b strings.Builder
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(sep)
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
