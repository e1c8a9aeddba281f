package catalog

import "github.com/usamaejaz9741/pizza-shop/internal/pricing"

type GroupType string

const (
	GroupTopping GroupType = "topping"
	GroupSide    GroupType = "side"
	GroupDrink   GroupType = "drink"
)

func (t GroupType) Valid() bool {
	return t == GroupTopping || t == GroupSide || t == GroupDrink
}

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

type Product struct {
	ID          string       `json:"id"`
	CategoryID  string       `json:"category_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ImageURL    string       `json:"image_url"`
	IsActive    bool         `json:"is_active"`
	Variants    []Variant    `json:"variants"`
	AddonGroups []AddonGroup `json:"addon_groups"`
}

type Variant struct {
	ID        string        `json:"id"`
	ProductID string        `json:"product_id"`
	Size      string        `json:"size"`
	Crust     string        `json:"crust"`
	Price     pricing.Cents `json:"price"`
	IsActive  bool          `json:"is_active"`
}

type AddonGroup struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       GroupType `json:"type"`
	MinSelect  int       `json:"min_select"`
	MaxSelect  int       `json:"max_select"`
	IsRequired bool      `json:"is_required"`
	Addons     []Addon   `json:"addons"`
}

type Addon struct {
	ID       string        `json:"id"`
	GroupID  string        `json:"group_id"`
	Name     string        `json:"name"`
	Price    pricing.Cents `json:"price"`
	IsActive bool          `json:"is_active"`
}

// StoreSettings is the singleton restaurant_info record. Every field has a
// read-time default so a half-filled settings row still yields a usable
// storefront.
type StoreSettings struct {
	Name             string        `json:"name"`
	Currency         string        `json:"currency"`
	Phone            string        `json:"phone"`
	DeliveryFeeCents pricing.Cents `json:"delivery_fee_cents"`
	ThemeColor       string        `json:"theme_color"`
}

// StoreData is the full payload served to the storefront and admin pages.
type StoreData struct {
	Settings    StoreSettings `json:"settings"`
	Categories  []Category    `json:"categories"`
	Products    []Product     `json:"products"`
	AddonGroups []AddonGroup  `json:"addonGroups"`
}
