package analytics

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter formatea importes según la configuración regional, ej: "12.346 €".
// Lo comparten los textos del resumen y el reporte PDF.
type MoneyFormatter struct {
	p        *message.Printer
	currency string
}

// NewMoneyFormatter: un locale ilegible cae a español.
func NewMoneyFormatter(locale, currency string) *MoneyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return &MoneyFormatter{p: message.NewPrinter(tag), currency: currency}
}

// Money formatea d con `decimals` decimales seguido del símbolo de moneda.
func (f *MoneyFormatter) Money(d decimal.Decimal, decimals int) string {
	v, _ := d.Round(int32(decimals)).Float64()
	s := f.p.Sprint(number.Decimal(v, number.Scale(decimals)))
	if f.currency == "" {
		return s
	}
	return strings.TrimSpace(s + " " + f.currency)
}

// Count formatea un entero con separador de miles.
func (f *MoneyFormatter) Count(n int) string {
	return f.p.Sprint(number.Decimal(n))
}
