// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package cart provides the shopping cart and order parameter models.
package cart

import (
	"fmt"

	"github.com/z5labs/storefront/param"
)

// Item is a single cart line.
type Item struct {
	ProductID int
	ColourID  string
	Size      string
	Quantity  int
}

// Cart is an ordered sequence of line items. Items have no identity beyond
// their position, so indices are reassigned whenever the cart is serialized.
//
// The zero value is an empty cart ready to use.
type Cart struct {
	items []Item
}

// New
func New(items ...Item) *Cart {
	c := &Cart{}
	c.Add(items...)
	return c
}

// Add appends items to the end of the cart.
func (c *Cart) Add(items ...Item) {
	c.items = append(c.items, items...)
}

// AddItem appends a single line built from its fields.
func (c *Cart) AddItem(productID int, colourID, size string, quantity int) {
	c.Add(Item{
		ProductID: productID,
		ColourID:  colourID,
		Size:      size,
		Quantity:  quantity,
	})
}

// Clear removes every item.
func (c *Cart) Clear() {
	c.items = nil
}

// Len
func (c *Cart) Len() int {
	return len(c.items)
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// ItemParams flattens the items into item{n}_{field} keys where n is 1-based
// and contiguous. It always yields exactly four keys per item.
func (c *Cart) ItemParams() param.Params {
	p := make(param.Params, 4*len(c.items))
	for i, item := range c.items {
		prefix := fmt.Sprintf("item%d_", i+1)
		p[prefix+"product_id"] = param.Int(item.ProductID)
		p[prefix+"colour_id"] = param.String(item.ColourID)
		p[prefix+"size"] = param.String(item.Size)
		p[prefix+"quantity"] = param.Int(item.Quantity)
	}
	return p
}

// Params implements the [param.Encoder] interface.
func (c *Cart) Params() param.Params {
	return c.ItemParams()
}
