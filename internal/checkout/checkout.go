package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/nikolayk812/roze-storefront/internal/domain"
)

var (
	ErrProfileIncomplete = errors.New("profile is missing full name or phone")
	ErrEmptyCart         = errors.New("cart is empty")
)

const paymentMethods = "Pix / Dinheiro na entrega"

type Order struct {
	Lines   []domain.CartLine
	Total   domain.Money
	Profile domain.Profile
}

type Handoff struct {
	Message string
	URL     string
}

// Summary renders the order as the text sent to the store. It never touches
// the cart the lines came from.
func Summary(order Order) (string, error) {
	if len(order.Lines) == 0 {
		return "", ErrEmptyCart
	}
	if !order.Profile.CanCheckout() {
		return "", ErrProfileIncomplete
	}

	p := order.Profile

	var b strings.Builder
	b.WriteString("Olá! Quero fazer o seguinte pedido:\n\n")
	b.WriteString("[INFORMAÇÕES DO CLIENTE]\n")
	fmt.Fprintf(&b, "Nome: %s\n", p.FullName)
	fmt.Fprintf(&b, "Telefone: %s\n", p.Phone)
	fmt.Fprintf(&b, "Endereço: %s, %s - %s, %s\n", p.Street, p.Number, p.District, p.CityOrDefault())
	if p.Complement != "" {
		fmt.Fprintf(&b, "Complemento: %s\n", p.Complement)
	}

	b.WriteString("\n[PRODUTOS]\nItens:\n")
	for _, l := range order.Lines {
		fmt.Fprintf(&b, "• %dx %s (%s) - %s\n", l.Quantity, l.Name, l.Volume, FormatPrice(l.Subtotal()))
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", FormatPrice(order.Total))
	fmt.Fprintf(&b, "Forma de pagamento: %s\n", paymentMethods)
	b.WriteString("Observações: ________________\n\n")
	b.WriteString("Obrigado! Aguardo confirmação.")

	return b.String(), nil
}

// WhatsApp hands orders to the store's WhatsApp number through a wa.me link.
type WhatsApp struct {
	phone string
}

func NewWhatsApp(phone string) (*WhatsApp, error) {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if phone == "" {
		return nil, fmt.Errorf("phone is empty")
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("phone[%s] must contain digits only", phone)
		}
	}

	return &WhatsApp{phone: phone}, nil
}

func (w *WhatsApp) Handoff(order Order) (Handoff, error) {
	msg, err := Summary(order)
	if err != nil {
		return Handoff{}, err
	}

	return Handoff{
		Message: msg,
		URL:     "https://wa.me/" + w.phone + "?text=" + encodeURIComponent(msg),
	}, nil
}

// encodeURIComponent escapes like the browser function of the same name, so
// spaces become %20 rather than +.
func encodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")

	for _, keep := range []string{"!", "'", "(", ")", "*"} {
		escaped = strings.ReplaceAll(escaped, url.QueryEscape(keep), keep)
	}

	return escaped
}
