// Package cart holds the shopping cart rules: one line per product,
// quantities merge on add, and a line disappears when its quantity hits zero.
package cart

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrLineNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)

type Line struct {
	ProductID uint
	Name      string
	Price     float64
	Image     string
	Category  string
	Quantity  int
	AddedAt   time.Time
}

func (l Line) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Cart struct {
	lines []Line
}

func New(lines ...Line) *Cart {
	c := &Cart{}
	for _, l := range lines {
		c.Add(l, l.Quantity)
	}
	return c
}

// Lines returns a copy in display order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int    { return len(c.lines) }
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// IndexOf returns the position of the product's line, or -1.
func (c *Cart) IndexOf(productID uint) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges into an existing line for the same product or appends a new one.
// Quantities below one count as one.
func (c *Cart) Add(line Line, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	if i := c.IndexOf(line.ProductID); i >= 0 {
		c.lines[i].Quantity += quantity
		return
	}
	line.Quantity = quantity
	if line.AddedAt.IsZero() {
		line.AddedAt = time.Now()
	}
	c.lines = append(c.lines, line)
}

// Put overwrites the product's line with the given one, keeping its position.
func (c *Cart) Put(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if line.AddedAt.IsZero() {
		line.AddedAt = time.Now()
	}
	if i := c.IndexOf(line.ProductID); i >= 0 {
		c.lines[i] = line
		return
	}
	c.lines = append(c.lines, line)
}

func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (c *Cart) SetQuantity(index, quantity int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return c.Remove(index)
	}
	c.lines[index].Quantity = quantity
	return nil
}

func (c *Cart) Decrement(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineNotFound
	}
	return c.SetQuantity(index, c.lines[index].Quantity-1)
}

// Merge folds other into c, summing quantities of shared products.
func (c *Cart) Merge(other *Cart) {
	if other == nil {
		return
	}
	for _, l := range other.lines {
		c.Add(l, l.Quantity)
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Total is the sum of price times quantity, rounded to cents.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total.Round(2)
}

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}
