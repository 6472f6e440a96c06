package httpapi

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/cart"
	"github.com/nikolayk812/roze-storefront/internal/checkout"
	"github.com/nikolayk812/roze-storefront/internal/domain"
)

type productResponse struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"nome"`
	Price          json.Number `json:"preco"`
	PriceFormatted string      `json:"preco_formatado"`
	Volume         string      `json:"volume"`
	Description    string      `json:"descricao"`
	ImageURL       string      `json:"imagem_url"`
	Category       string      `json:"categoria"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:             p.ID,
		Name:           p.Name,
		Price:          json.Number(p.Price.Fixed()),
		PriceFormatted: checkout.FormatPrice(p.Price),
		Volume:         p.Volume,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		Category:       p.Category,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	result := make([]productResponse, 0, len(products))
	for _, p := range products {
		result = append(result, toProductResponse(p))
	}
	return result
}

type cartLineResponse struct {
	ID       uuid.UUID   `json:"id"`
	Name     string      `json:"nome"`
	Price    json.Number `json:"preco"`
	Volume   string      `json:"volume"`
	ImageURL string      `json:"imagem_url"`
	Quantity int         `json:"quantidade"`
	Subtotal json.Number `json:"subtotal"`
}

type cartResponse struct {
	Items          []cartLineResponse `json:"itens"`
	ItemCount      int                `json:"itemCount"`
	Total          json.Number        `json:"total"`
	TotalFormatted string             `json:"total_formatado"`
}

func toCartResponse(snap cart.Snapshot) cartResponse {
	items := make([]cartLineResponse, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, cartLineResponse{
			ID:       l.ProductID,
			Name:     l.Name,
			Price:    json.Number(l.Price.Fixed()),
			Volume:   l.Volume,
			ImageURL: l.ImageURL,
			Quantity: l.Quantity,
			Subtotal: json.Number(l.Subtotal().Fixed()),
		})
	}

	return cartResponse{
		Items:          items,
		ItemCount:      snap.Totals.ItemCount,
		Total:          json.Number(snap.Totals.Total.Fixed()),
		TotalFormatted: checkout.FormatPrice(snap.Totals.Total),
	}
}

type profileBody struct {
	FullName   string `json:"nome_completo"`
	Phone      string `json:"telefone"`
	Street     string `json:"endereco"`
	Number     string `json:"numero"`
	District   string `json:"bairro"`
	Complement string `json:"complemento"`
	City       string `json:"cidade"`
}

func (b profileBody) toDomain(userID uuid.UUID) domain.Profile {
	return domain.Profile{
		UserID:     userID,
		FullName:   b.FullName,
		Phone:      b.Phone,
		Street:     b.Street,
		Number:     b.Number,
		District:   b.District,
		Complement: b.Complement,
		City:       b.City,
	}
}

type profileResponse struct {
	ID uuid.UUID `json:"id"`
	profileBody
}

func toProfileResponse(p domain.Profile) profileResponse {
	return profileResponse{
		ID: p.UserID,
		profileBody: profileBody{
			FullName:   p.FullName,
			Phone:      p.Phone,
			Street:     p.Street,
			Number:     p.Number,
			District:   p.District,
			Complement: p.Complement,
			City:       p.City,
		},
	}
}

type signUpRequest struct {
	Email        string `json:"email"`
	Password     string `json:"senha"`
	Confirmation string `json:"confirmar_senha"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type sessionResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt time.Time `json:"expira_em"`
}

type categoryBody struct {
	Name string `json:"nome"`
}

type addToCartRequest struct {
	ID uuid.UUID `json:"id"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantidade"`
}

type checkoutResponse struct {
	Message string `json:"mensagem"`
	URL     string `json:"url"`
}
