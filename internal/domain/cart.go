package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// CartLine is one product in the cart. Display fields are a snapshot of the
// product taken when it was first added.
type CartLine struct {
	ProductID uuid.UUID
	Name      string
	Price     Money
	Volume    string
	ImageURL  string
	Quantity  int
}

func (l CartLine) Subtotal() Money {
	return l.Price.Mul(l.Quantity)
}

type CartTotals struct {
	ItemCount int
	Total     Money
}

// Cart holds the selected products of one session. It is not safe for
// concurrent use; the owner serialises access.
type Cart struct {
	currency currency.Unit
	lines    []CartLine
}

func NewCart(cur currency.Unit) *Cart {
	return &Cart{currency: cur}
}

// Add increments the quantity of the product's line, or appends a new line
// with quantity 1.
func (c *Cart) Add(p Product) CartTotals {
	if i := c.indexOf(p.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.Totals()
	}

	c.lines = append(c.lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Volume:    p.Volume,
		ImageURL:  p.ImageURL,
		Quantity:  1,
	})

	return c.Totals()
}

func (c *Cart) Remove(productID uuid.UUID) CartTotals {
	if i := c.indexOf(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}

	return c.Totals()
}

// SetQuantity overwrites the quantity of a line. Quantities below 1 are
// ignored: a line never disappears by reaching zero.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) CartTotals {
	if quantity < 1 {
		return c.Totals()
	}

	if i := c.indexOf(productID); i >= 0 {
		c.lines[i].Quantity = quantity
	}

	return c.Totals()
}

func (c *Cart) Total() Money {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal().Amount)
	}

	return Money{Amount: total, Currency: c.currency}
}

func (c *Cart) ItemCount() int {
	var count int
	for _, l := range c.lines {
		count += l.Quantity
	}

	return count
}

func (c *Cart) Totals() CartTotals {
	return CartTotals{
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []CartLine {
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Currency() currency.Unit {
	return c.currency
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}

	return -1
}
