package checkout_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/checkout"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestSummary_Golden(t *testing.T) {
	tests := []struct {
		name    string
		profile domain.Profile
	}{
		{
			name: "summary_with_complement",
			profile: domain.Profile{
				FullName:   "Maria Silva",
				Phone:      "(89) 99999-0000",
				Street:     "Rua Coelho Rodrigues",
				Number:     "120",
				District:   "Centro",
				Complement: "Casa A",
			},
		},
		{
			name: "summary_without_complement",
			profile: domain.Profile{
				FullName: "João Pereira",
				Phone:    "89988887777",
				Street:   "Av. Senador Helvídio Nunes",
				Number:   "45",
				District: "Junco",
				City:     "Teresina",
			},
		},
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := checkout.Summary(sampleOrder(tt.profile))
			require.NoError(t, err)

			g.Assert(t, tt.name, []byte(msg))
		})
	}
}

func TestSummary_Errors(t *testing.T) {
	complete := domain.Profile{FullName: "Maria", Phone: "89999"}

	tests := []struct {
		name    string
		order   checkout.Order
		wantErr error
	}{
		{
			name:    "empty cart",
			order:   checkout.Order{Profile: complete, Total: brl("0")},
			wantErr: checkout.ErrEmptyCart,
		},
		{
			name:    "missing phone",
			order:   sampleOrder(domain.Profile{FullName: "Maria"}),
			wantErr: checkout.ErrProfileIncomplete,
		},
		{
			name:    "missing name",
			order:   sampleOrder(domain.Profile{Phone: "89999"}),
			wantErr: checkout.ErrProfileIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checkout.Summary(tt.order)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSummary_DoesNotTouchCart(t *testing.T) {
	cart := domain.NewCart(currency.BRL)
	cart.Add(domain.Product{ID: uuid.New(), Name: "Malbec", Price: brl("10.50"), Volume: "100ml"})

	_, err := checkout.Summary(checkout.Order{
		Lines:   cart.Lines(),
		Total:   cart.Total(),
		Profile: domain.Profile{FullName: "Maria", Phone: "89999"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, cart.ItemCount())
	assert.False(t, cart.IsEmpty())
}

func TestWhatsApp_Handoff(t *testing.T) {
	w, err := checkout.NewWhatsApp("+5589999030380")
	require.NoError(t, err)

	order := sampleOrder(domain.Profile{FullName: "Maria Silva", Phone: "89999", Street: "Rua A", Number: "1", District: "Centro"})

	h, err := w.Handoff(order)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(h.URL, "https://wa.me/5589999030380?text="), h.URL)
	assert.NotContains(t, h.URL, "+")
	assert.Contains(t, h.URL, "Ol%C3%A1!%20Quero")

	u, err := url.Parse(h.URL)
	require.NoError(t, err)
	assert.Equal(t, h.Message, u.Query().Get("text"))
}

func TestNewWhatsApp(t *testing.T) {
	tests := []struct {
		name      string
		phone     string
		wantError string
	}{
		{name: "digits", phone: "5589999030380"},
		{name: "leading plus", phone: "+5589999030380"},
		{name: "empty", phone: " ", wantError: "phone is empty"},
		{name: "formatted", phone: "(89) 9999", wantError: "phone[(89) 9999] must contain digits only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := checkout.NewWhatsApp(tt.phone)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func sampleOrder(profile domain.Profile) checkout.Order {
	cart := domain.NewCart(currency.BRL)

	malbec := domain.Product{ID: uuid.New(), Name: "Malbec", Price: brl("10.50"), Volume: "100ml"}
	lily := domain.Product{ID: uuid.New(), Name: "Lily", Price: brl("5.00"), Volume: "50ml"}
	coffret := domain.Product{ID: uuid.New(), Name: "Coffret Luxo", Price: brl("1234.5")}

	cart.Add(malbec)
	cart.Add(lily)
	cart.Add(malbec)
	cart.Add(coffret)

	return checkout.Order{
		Lines:   cart.Lines(),
		Total:   cart.Total(),
		Profile: profile,
	}
}

func brl(amount string) domain.Money {
	return domain.Money{Amount: decimal.RequireFromString(amount), Currency: currency.BRL}
}
