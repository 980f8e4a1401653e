// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storefront

import "github.com/z5labs/storefront/apierr"

// Method group names.
const (
	GroupCatalogue = "catalogue"
	GroupOrder     = "order"
	GroupManage    = "manage"
)

// GroupHandler is a named cluster of remote operations bound to its owning [Client].
type GroupHandler interface {
	Name() string
	Client() *Client
}

type group struct {
	name   string
	client *Client
}

// Name implements the [GroupHandler] interface.
func (g group) Name() string {
	return g.name
}

// Client implements the [GroupHandler] interface.
func (g group) Client() *Client {
	return g.client
}

func (c *Client) newGroup(name string) (GroupHandler, error) {
	g := group{name: name, client: c}
	switch name {
	case GroupCatalogue:
		return &CatalogueGroup{group: g}, nil
	case GroupOrder:
		return &OrderGroup{group: g}, nil
	case GroupManage:
		return &ManageGroup{group: g}, nil
	default:
		return nil, apierr.UnsupportedGroup(name)
	}
}

// Group resolves a method group by name. The same name always resolves to the
// same handler for the lifetime of c. An unknown name fails with an
// [apierr.KindUnsupportedGroup] error.
func (c *Client) Group(name string) (GroupHandler, error) {
	return c.groups.Get(name)
}

func mustGroup[T GroupHandler](c *Client, name string) T {
	g, err := c.Group(name)
	if err != nil {
		panic(err)
	}
	return g.(T)
}

// Catalogue
func (c *Client) Catalogue() *CatalogueGroup {
	return mustGroup[*CatalogueGroup](c, GroupCatalogue)
}

// Order
func (c *Client) Order() *OrderGroup {
	return mustGroup[*OrderGroup](c, GroupOrder)
}

// Manage
func (c *Client) Manage() *ManageGroup {
	return mustGroup[*ManageGroup](c, GroupManage)
}
