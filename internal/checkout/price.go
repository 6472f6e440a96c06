package checkout

import (
	"strings"

	"github.com/nikolayk812/roze-storefront/internal/domain"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPrice renders money the way Brazilian shoppers read it, e.g.
// "R$ 1.234,56". Rounding to the currency's minor unit happens here only.
func FormatPrice(m domain.Money) string {
	amount := m.Round()
	scale, _ := currency.Standard.Rounding(m.Currency)

	whole, frac, _ := strings.Cut(amount.Abs().StringFixed(int32(scale)), ".")

	var b strings.Builder
	if amount.IsNegative() {
		b.WriteString("-")
	}
	b.WriteString(message.NewPrinter(language.BrazilianPortuguese).Sprint(currency.Symbol(m.Currency)))
	b.WriteString(" ")
	b.WriteString(groupThousands(whole))
	if frac != "" {
		b.WriteString(",")
		b.WriteString(frac)
	}

	return b.String()
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(digits[i : i+3])
	}

	return b.String()
}
