// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storefront

import (
	"context"

	"github.com/z5labs/storefront/cart"
	"github.com/z5labs/storefront/param"
)

// OrderGroup prices and places checkout orders.
type OrderGroup struct {
	group
}

// Calculate prices the items in c. A nil country is omitted so the remote
// applies the store's default region.
func (g *OrderGroup) Calculate(ctx context.Context, storeID string, c *cart.Cart, country *string) (Response, error) {
	p := param.Params{
		"store_id": param.String(storeID),
		"country":  param.OptionalString(country),
	}
	return g.client.Request(ctx, "order/calculate", p.Merge(c.ItemParams()), false)
}

// CalculateOrder prices the items of o. Unlike [OrderGroup.Calculate], a nil
// country defaults to the country stored on the order. If that is empty too
// the country is omitted rather than sent as an empty value.
func (g *OrderGroup) CalculateOrder(ctx context.Context, storeID string, o *cart.Order, country *string) (Response, error) {
	if country == nil && o.Country != "" {
		country = &o.Country
	}
	return g.Calculate(ctx, storeID, &o.Cart, country)
}

// Create places o, sending both its address and its items.
func (g *OrderGroup) Create(ctx context.Context, storeID string, o *cart.Order) (Response, error) {
	p := param.Params{
		"store_id": param.String(storeID),
	}
	return g.client.Request(ctx, "order/create", p.Merge(o.CheckoutParams()), false)
}

// Get
func (g *OrderGroup) Get(ctx context.Context, orderID string) (Response, error) {
	return g.client.Request(ctx, "order/get", param.Params{
		"order_id": param.String(orderID),
	}, false)
}
