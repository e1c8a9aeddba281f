package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

var ErrValidation = errors.New("validation")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// Store data (storefront + admin read model)
// --------------------------------------------------

// GetStoreData returns the public storefront payload: active products only.
func (s *Service) GetStoreData(ctx context.Context) (*StoreData, error) {
	return s.fetchStoreData(ctx, false)
}

// GetAdminData returns everything, inactive products included.
func (s *Service) GetAdminData(ctx context.Context) (*StoreData, error) {
	return s.fetchStoreData(ctx, true)
}

func (s *Service) fetchStoreData(ctx context.Context, isAdmin bool) (*StoreData, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("settings.select: %w", err)
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories.select: %w", err)
	}

	groups, err := s.repo.ListAddonGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("addon_groups.select: %w", err)
	}

	products, err := s.repo.ListProducts(ctx, !isAdmin)
	if err != nil {
		return nil, fmt.Errorf("products.select: %w", err)
	}

	return &StoreData{
		Settings:    settings,
		Categories:  categories,
		Products:    products,
		AddonGroups: groups,
	}, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (s *Service) UpdateSettings(ctx context.Context, settings StoreSettings) error {
	if settings.DeliveryFeeCents < 0 {
		return fmt.Errorf("delivery fee must not be negative: %w", ErrValidation)
	}

	settings.ThemeColor = "red"

	if err := s.repo.UpsertSettings(ctx, settings); err != nil {
		return fmt.Errorf("updateSettings: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}

	c, err := s.repo.CreateCategory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("createCategory: %w", err)
	}
	return c, nil
}

func (s *Service) ReorderCategories(ctx context.Context, orders []CategoryOrder) error {
	if err := s.repo.UpdateCategoryOrder(ctx, orders); err != nil {
		return fmt.Errorf("updateCategoryOrderBulk: %w", err)
	}
	return nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("deleteCategory: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Products
// --------------------------------------------------

// CreateProduct inserts the product together with a default
// Standard/Original variant at the given price.
func (s *Service) CreateProduct(ctx context.Context, categoryID, name, description, imageURL string, price pricing.Cents) (*Product, error) {
	if name == "" || categoryID == "" {
		return nil, fmt.Errorf("product name and category are required: %w", ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}

	if imageURL == "" {
		imageURL = "https://placehold.co/400x300/orange/white?text=" + url.QueryEscape(name)
	}

	p := &Product{
		CategoryID:  categoryID,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		IsActive:    true,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, fmt.Errorf("createProduct: %w", err)
	}

	v := &Variant{
		ProductID: p.ID,
		Size:      "Standard",
		Crust:     "Original",
		Price:     price,
		IsActive:  true,
	}
	if err := s.repo.CreateVariant(ctx, v); err != nil {
		return nil, fmt.Errorf("createProduct (default variant): %w", err)
	}
	p.Variants = []Variant{*v}

	return p, nil
}

func (s *Service) SetProductStatus(ctx context.Context, id string, active bool) error {
	if err := s.repo.SetProductStatus(ctx, id, active); err != nil {
		return fmt.Errorf("updateProductStatus: %w", err)
	}
	return nil
}

func (s *Service) SetProductImage(ctx context.Context, id, imageURL string) error {
	if err := s.repo.UpdateProductImage(ctx, id, imageURL); err != nil {
		return fmt.Errorf("updateProductImage: %w", err)
	}
	return nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("deleteProduct: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Variants
// --------------------------------------------------

func (s *Service) CreateVariant(ctx context.Context, productID, size, crust string, price pricing.Cents) (*Variant, error) {
	if productID == "" || size == "" {
		return nil, fmt.Errorf("variant product and size are required: %w", ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}

	v := &Variant{ProductID: productID, Size: size, Crust: crust, Price: price, IsActive: true}
	if err := s.repo.CreateVariant(ctx, v); err != nil {
		return nil, fmt.Errorf("createVariant: %w", err)
	}
	return v, nil
}

func (s *Service) UpdateVariant(ctx context.Context, id, size, crust string, price pricing.Cents) error {
	if price < 0 {
		return fmt.Errorf("price must not be negative: %w", ErrValidation)
	}
	if err := s.repo.UpdateVariant(ctx, id, size, crust, price); err != nil {
		return fmt.Errorf("updateVariant: %w", err)
	}
	return nil
}

func (s *Service) DeleteVariant(ctx context.Context, id string) error {
	if err := s.repo.DeleteVariant(ctx, id); err != nil {
		return fmt.Errorf("deleteVariant: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Addon groups & addons
// --------------------------------------------------

func (s *Service) CreateAddonGroup(ctx context.Context, name string, groupType GroupType, minSelect, maxSelect int, required bool) (*AddonGroup, error) {
	if name == "" {
		return nil, fmt.Errorf("group name is required: %w", ErrValidation)
	}
	if !groupType.Valid() {
		return nil, fmt.Errorf("group type must be topping, side or drink: %w", ErrValidation)
	}
	if minSelect < 0 {
		return nil, fmt.Errorf("min_select must not be negative: %w", ErrValidation)
	}
	if maxSelect < minSelect {
		return nil, fmt.Errorf("max_select must be >= min_select: %w", ErrValidation)
	}
	// A required group with min_select=0 would be vacuously satisfied,
	// so the floor is enforced here at the admin boundary.
	if required && minSelect < 1 {
		return nil, fmt.Errorf("required groups need min_select >= 1: %w", ErrValidation)
	}

	g := &AddonGroup{
		Name:       name,
		Type:       groupType,
		MinSelect:  minSelect,
		MaxSelect:  maxSelect,
		IsRequired: required,
	}
	if err := s.repo.CreateAddonGroup(ctx, g); err != nil {
		return nil, fmt.Errorf("createAddonGroup: %w", err)
	}
	return g, nil
}

func (s *Service) DeleteAddonGroup(ctx context.Context, id string) error {
	if err := s.repo.DeleteAddonGroup(ctx, id); err != nil {
		return fmt.Errorf("deleteAddonGroup: %w", err)
	}
	return nil
}

func (s *Service) CreateAddon(ctx context.Context, groupID, name string, price pricing.Cents) (*Addon, error) {
	if groupID == "" || name == "" {
		return nil, fmt.Errorf("addon group and name are required: %w", ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}

	a := &Addon{GroupID: groupID, Name: name, Price: price, IsActive: true}
	if err := s.repo.CreateAddon(ctx, a); err != nil {
		return nil, fmt.Errorf("createAddon: %w", err)
	}
	return a, nil
}

func (s *Service) DeleteAddon(ctx context.Context, id string) error {
	if err := s.repo.DeleteAddon(ctx, id); err != nil {
		return fmt.Errorf("deleteAddon: %w", err)
	}
	return nil
}

// SetAddonGroupLink links or unlinks a group on a product.
func (s *Service) SetAddonGroupLink(ctx context.Context, productID, groupID string, linked bool) error {
	if linked {
		if err := s.repo.LinkAddonGroup(ctx, productID, groupID); err != nil {
			return fmt.Errorf("toggleProductAddonGroup (link): %w", err)
		}
		return nil
	}
	if err := s.repo.UnlinkAddonGroup(ctx, productID, groupID); err != nil {
		return fmt.Errorf("toggleProductAddonGroup (unlink): %w", err)
	}
	return nil
}
