// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storefront

import (
	"context"
	"sort"
	"strings"

	"github.com/z5labs/storefront/param"
)

// ClearParam lists the fields an update should unset.
const ClearParam = "clear"

// ManageGroup administers the authenticated store. Every call is signed.
type ManageGroup struct {
	group
}

// Store
func (g *ManageGroup) Store(ctx context.Context) (Response, error) {
	return g.client.Request(ctx, "manage/store", nil, true)
}

// EditStore updates the store fields in fields. Omitted fields are left
// unchanged; a field set to the empty string is cleared instead.
func (g *ManageGroup) EditStore(ctx context.Context, fields param.Params) (Response, error) {
	return g.client.Request(ctx, "manage/store_edit", withClearList(fields), true)
}

// Orders lists a page of the store's orders. Pages start at 1.
func (g *ManageGroup) Orders(ctx context.Context, page int) (Response, error) {
	return g.client.Request(ctx, "manage/orders", param.Params{
		"page": param.Int(page),
	}, true)
}

// AddProductImage uploads image for the given product.
func (g *ManageGroup) AddProductImage(ctx context.Context, productID int, image param.File) (Response, error) {
	return g.client.Request(ctx, "manage/product_image_add", param.Params{
		"product_id": param.Int(productID),
		"image_file": param.FileValue(image),
	}, true)
}

// withClearList moves every empty string field into the comma separated clear
// list. The remote names the logo field "logo" in the clear list even though it
// is uploaded as "logo_file".
func withClearList(fields param.Params) param.Params {
	update := make(param.Params, len(fields))
	var clear []string
	for k, v := range fields {
		if !v.IsEmptyString() {
			update[k] = v
			continue
		}
		clear = append(clear, clearToken(k))
	}
	if len(clear) == 0 {
		return update
	}

	sort.Strings(clear)
	update[ClearParam] = param.String(strings.Join(clear, ","))
	return update
}

func clearToken(field string) string {
	if field == "logo_file" {
		return "logo"
	}
	return field
}
