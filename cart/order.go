// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package cart

import "github.com/z5labs/storefront/param"

// Address holds the fixed recipient fields of an [Order].
type Address struct {
	Name     string
	Email    string
	Country  string
	Postcode string
	Region   string
	City     string
	Line1    string
	Line2    *string
}

// Params implements the [param.Encoder] interface.
func (a Address) Params() param.Params {
	return param.Params{
		"name":     param.String(a.Name),
		"email":    param.String(a.Email),
		"country":  param.String(a.Country),
		"postcode": param.String(a.Postcode),
		"region":   param.String(a.Region),
		"city":     param.String(a.City),
		"address1": param.String(a.Line1),
		"address2": param.OptionalString(a.Line2),
	}
}

// Order is a [Cart] plus a recipient [Address]. Every cart operation is
// available on an Order through the embedded Cart.
type Order struct {
	Cart
	Address
}

// NewOrder
func NewOrder(addr Address, items ...Item) *Order {
	o := &Order{Address: addr}
	o.Add(items...)
	return o
}

// Params implements the [param.Encoder] interface. It only yields the fixed
// address fields; use [Order.CheckoutParams] to include the items.
func (o *Order) Params() param.Params {
	return o.Address.Params()
}

// CheckoutParams merges the address fields with the item fields. The two key
// namespaces are disjoint so neither side takes precedence.
func (o *Order) CheckoutParams() param.Params {
	return o.Address.Params().Merge(o.ItemParams())
}
