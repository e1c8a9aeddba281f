package order

import (
	"errors"

	"github.com/google/uuid"

	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

// Step is one screen of the product configuration flow.
type Step string

const (
	StepVariant Step = "variant"
	StepFood    Step = "food"
	StepDrinks  Step = "drinks"
)

var (
	ErrStepInvalid = errors.New("current step is not valid")
	ErrDone        = errors.New("configuration already finalized")
)

// Builder walks a shopper through configuring one product: pick a variant,
// then food add-ons, then drinks. Steps for group types the product is not
// linked to are absent from the sequence entirely, not skipped at runtime.
type Builder struct {
	product     catalog.Product
	foodGroups  []catalog.AddonGroup
	drinkGroups []catalog.AddonGroup

	steps    []Step
	stepIdx  int
	variant  *catalog.Variant
	selected []catalog.Addon
	quantity int
	done     bool
}

// NewBuilder computes the step sequence once from the product's linked
// groups and pre-selects the first variant, if any.
func NewBuilder(product catalog.Product) *Builder {
	b := &Builder{
		product:  product,
		quantity: 1,
	}

	for _, g := range product.AddonGroups {
		switch g.Type {
		case catalog.GroupTopping, catalog.GroupSide:
			b.foodGroups = append(b.foodGroups, g)
		case catalog.GroupDrink:
			b.drinkGroups = append(b.drinkGroups, g)
		}
	}

	b.steps = []Step{StepVariant}
	if len(b.foodGroups) > 0 {
		b.steps = append(b.steps, StepFood)
	}
	if len(b.drinkGroups) > 0 {
		b.steps = append(b.steps, StepDrinks)
	}

	if len(product.Variants) > 0 {
		v := product.Variants[0]
		b.variant = &v
	}

	return b
}

func (b *Builder) Steps() []Step   { return b.steps }
func (b *Builder) Current() Step   { return b.steps[b.stepIdx] }
func (b *Builder) IsLast() bool    { return b.stepIdx == len(b.steps)-1 }
func (b *Builder) Done() bool      { return b.done }
func (b *Builder) Quantity() int   { return b.quantity }
func (b *Builder) Selected() []catalog.Addon {
	out := make([]catalog.Addon, len(b.selected))
	copy(out, b.selected)
	return out
}

// SelectVariant chooses a variant belonging to the product.
func (b *Builder) SelectVariant(variantID string) bool {
	for _, v := range b.product.Variants {
		if v.ID == variantID {
			chosen := v
			b.variant = &chosen
			return true
		}
	}
	return false
}

// Toggle selects or deselects the addon. Disallowed toggles are rejected
// silently: the selection stays as it was and false is returned.
func (b *Builder) Toggle(addonID string) bool {
	addon, group, ok := b.findAddon(addonID)
	if !ok {
		return false
	}

	if !CanToggle(addon, group, b.selected) {
		return false
	}

	if isSelected(addon, b.selected) {
		kept := b.selected[:0]
		for _, a := range b.selected {
			if a.ID != addon.ID {
				kept = append(kept, a)
			}
		}
		b.selected = kept
	} else {
		b.selected = append(b.selected, addon)
	}
	return true
}

func (b *Builder) findAddon(addonID string) (catalog.Addon, catalog.AddonGroup, bool) {
	for _, g := range b.product.AddonGroups {
		for _, a := range g.Addons {
			if a.ID == addonID {
				return a, g, true
			}
		}
	}
	return catalog.Addon{}, catalog.AddonGroup{}, false
}

// AdjustQuantity applies a delta to the quantity counter, floored at 1.
func (b *Builder) AdjustQuantity(delta int) {
	b.quantity += delta
	if b.quantity < 1 {
		b.quantity = 1
	}
}

// CurrentPrice is the running display price: variant plus every selected
// addon across all steps, times the quantity.
func (b *Builder) CurrentPrice() pricing.Cents {
	var price pricing.Cents
	if b.variant != nil {
		price = b.variant.Price
	}
	for _, a := range b.selected {
		price += a.Price
	}
	return price * pricing.Cents(b.quantity)
}

// StepValid reports whether the current step allows forward progress.
func (b *Builder) StepValid() bool {
	switch b.Current() {
	case StepVariant:
		return b.variant != nil
	case StepFood:
		return b.groupsSatisfied(b.foodGroups)
	case StepDrinks:
		return b.groupsSatisfied(b.drinkGroups)
	}
	return false
}

func (b *Builder) groupsSatisfied(groups []catalog.AddonGroup) bool {
	for _, g := range groups {
		if !GroupSatisfied(g, b.selected) {
			return false
		}
	}
	return true
}

// Back steps to the previous screen; a no-op on the first one.
func (b *Builder) Back() {
	if b.stepIdx > 0 {
		b.stepIdx--
	}
}

// Next advances the flow. On intermediate steps it moves to the next screen
// and returns nil. On the last step it finalizes: the configured line item
// is returned and the builder is spent.
func (b *Builder) Next() (*LineItem, error) {
	if b.done {
		return nil, ErrDone
	}
	if !b.StepValid() {
		return nil, ErrStepInvalid
	}

	if !b.IsLast() {
		b.stepIdx++
		return nil, nil
	}

	if b.variant == nil {
		return nil, ErrStepInvalid
	}

	b.done = true
	return &LineItem{
		UID:            uuid.New().String(),
		Product:        ProductSnapshot{ID: b.product.ID, Name: b.product.Name},
		Variant:        *b.variant,
		SelectedAddons: b.Selected(),
		Quantity:       pricing.Count(b.quantity),
	}, nil
}
