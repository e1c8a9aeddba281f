package catalog

import (
	"context"

	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

// Repository defines all database operations for the catalog.
//
// The backing store makes no implicit ordering promise, so ordered reads
// (categories by sort_order, groups by name) are part of the contract here.
type Repository interface {

	// -------------------------------
	// Storefront reads
	// -------------------------------

	GetSettings(ctx context.Context) (StoreSettings, error)
	ListCategories(ctx context.Context) ([]Category, error)

	// ListProducts returns products with their variants and linked addon
	// groups (addons included). activeOnly filters products for the
	// public storefront; admin reads pass false.
	ListProducts(ctx context.Context, activeOnly bool) ([]Product, error)

	// GetProduct loads one product with variants and linked groups.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListAddonGroups returns all groups with addons, ordered by name.
	ListAddonGroups(ctx context.Context) ([]AddonGroup, error)

	// -------------------------------
	// Admin mutations
	// -------------------------------

	UpsertSettings(ctx context.Context, s StoreSettings) error

	CreateCategory(ctx context.Context, name string) (*Category, error)
	UpdateCategoryOrder(ctx context.Context, orders []CategoryOrder) error
	DeleteCategory(ctx context.Context, id string) error

	CreateProduct(ctx context.Context, p *Product) error
	SetProductStatus(ctx context.Context, id string, active bool) error
	UpdateProductImage(ctx context.Context, id string, imageURL string) error
	DeleteProduct(ctx context.Context, id string) error

	CreateVariant(ctx context.Context, v *Variant) error
	UpdateVariant(ctx context.Context, id, size, crust string, price pricing.Cents) error
	DeleteVariant(ctx context.Context, id string) error

	CreateAddonGroup(ctx context.Context, g *AddonGroup) error
	DeleteAddonGroup(ctx context.Context, id string) error

	CreateAddon(ctx context.Context, a *Addon) error
	DeleteAddon(ctx context.Context, id string) error

	// Link is an upsert so double-clicks don't fail on duplicate keys.
	LinkAddonGroup(ctx context.Context, productID, groupID string) error
	UnlinkAddonGroup(ctx context.Context, productID, groupID string) error
}

// CategoryOrder is one entry of a bulk drag-to-reorder update.
type CategoryOrder struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sort_order"`
}
