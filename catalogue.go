// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package storefront

import (
	"context"

	"github.com/z5labs/storefront/param"
)

// CatalogueGroup reads public store and product data. None of its calls are signed.
type CatalogueGroup struct {
	group
}

// Store
func (g *CatalogueGroup) Store(ctx context.Context, storeID string) (Response, error) {
	return g.client.Request(ctx, "catalogue/store", param.Params{
		"store_id": param.String(storeID),
	}, false)
}

// Products lists a page of products. Pages start at 1.
func (g *CatalogueGroup) Products(ctx context.Context, storeID string, page int) (Response, error) {
	return g.client.Request(ctx, "catalogue/products", param.Params{
		"store_id": param.String(storeID),
		"page":     param.Int(page),
	}, false)
}

// Product
func (g *CatalogueGroup) Product(ctx context.Context, storeID string, productID int) (Response, error) {
	return g.client.Request(ctx, "catalogue/product", param.Params{
		"store_id":   param.String(storeID),
		"product_id": param.Int(productID),
	}, false)
}
