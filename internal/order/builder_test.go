package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

func pizzaProduct() catalog.Product {
	toppings := catalog.AddonGroup{
		ID:         "g-top",
		Name:       "Toppings",
		Type:       catalog.GroupTopping,
		MinSelect:  1,
		MaxSelect:  2,
		IsRequired: true,
		Addons: []catalog.Addon{
			{ID: "a-olives", GroupID: "g-top", Name: "Olives", Price: 150, IsActive: true},
			{ID: "a-corn", GroupID: "g-top", Name: "Corn", Price: 100, IsActive: true},
			{ID: "a-jalapeno", GroupID: "g-top", Name: "Jalapeno", Price: 120, IsActive: true},
		},
	}
	drinks := catalog.AddonGroup{
		ID:        "g-drink",
		Name:      "Drinks",
		Type:      catalog.GroupDrink,
		MinSelect: 0,
		MaxSelect: 3,
		Addons: []catalog.Addon{
			{ID: "a-cola", GroupID: "g-drink", Name: "Cola", Price: 200, IsActive: true},
		},
	}

	return catalog.Product{
		ID:       "p-pizza",
		Name:     "Margherita",
		IsActive: true,
		Variants: []catalog.Variant{
			{ID: "v-small", ProductID: "p-pizza", Size: "Small", Crust: "Original", Price: 800, IsActive: true},
			{ID: "v-large", ProductID: "p-pizza", Size: "Large", Crust: "Thin", Price: 1200, IsActive: true},
		},
		AddonGroups: []catalog.AddonGroup{toppings, drinks},
	}
}

func TestStepSequence(t *testing.T) {
	b := NewBuilder(pizzaProduct())
	assert.Equal(t, []Step{StepVariant, StepFood, StepDrinks}, b.Steps())

	// Drink-only product: no food step.
	p := pizzaProduct()
	p.AddonGroups = p.AddonGroups[1:]
	assert.Equal(t, []Step{StepVariant, StepDrinks}, NewBuilder(p).Steps())
}

// A product with no linked groups yields a single-step flow whose first
// Next immediately finalizes.
func TestSingleStepFlowFinalizesImmediately(t *testing.T) {
	p := pizzaProduct()
	p.AddonGroups = nil

	b := NewBuilder(p)
	require.Equal(t, []Step{StepVariant}, b.Steps())
	assert.True(t, b.IsLast())

	item, err := b.Next()
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, b.Done())
	assert.Equal(t, "p-pizza", item.Product.ID)
	assert.Equal(t, "v-small", item.Variant.ID)
	assert.Empty(t, item.SelectedAddons)
}

func TestFirstVariantPreselected(t *testing.T) {
	b := NewBuilder(pizzaProduct())
	assert.True(t, b.StepValid())
	assert.Equal(t, pricing.Cents(800), b.CurrentPrice())
}

func TestNextBlockedUntilRequiredGroupSatisfied(t *testing.T) {
	b := NewBuilder(pizzaProduct())

	item, err := b.Next()
	require.NoError(t, err)
	require.Nil(t, item)
	require.Equal(t, StepFood, b.Current())

	// Required toppings group is empty, so the step is invalid.
	_, err = b.Next()
	assert.ErrorIs(t, err, ErrStepInvalid)

	require.True(t, b.Toggle("a-olives"))
	item, err = b.Next()
	require.NoError(t, err)
	require.Nil(t, item)
	require.Equal(t, StepDrinks, b.Current())

	// Drinks are optional: finalize straight away.
	item, err = b.Next()
	require.NoError(t, err)
	require.NotNil(t, item)

	assert.Len(t, item.SelectedAddons, 1)
	assert.Equal(t, "a-olives", item.SelectedAddons[0].ID)
	assert.NotEmpty(t, item.UID)

	// The builder is spent after finalization.
	_, err = b.Next()
	assert.ErrorIs(t, err, ErrDone)
}

func TestBackIsNoOpOnFirstStep(t *testing.T) {
	b := NewBuilder(pizzaProduct())
	b.Back()
	assert.Equal(t, StepVariant, b.Current())

	_, _ = b.Next()
	require.Equal(t, StepFood, b.Current())
	b.Back()
	assert.Equal(t, StepVariant, b.Current())
}

func TestToggleRejectionsAreSilent(t *testing.T) {
	b := NewBuilder(pizzaProduct())

	require.True(t, b.Toggle("a-olives"))
	require.True(t, b.Toggle("a-corn"))

	// Ceiling of 2 reached: third topping is refused, selection unchanged.
	assert.False(t, b.Toggle("a-jalapeno"))
	assert.Len(t, b.Selected(), 2)

	// Unknown addon ids are refused too.
	assert.False(t, b.Toggle("a-nope"))
}

func TestRunningPriceTracksSelections(t *testing.T) {
	b := NewBuilder(pizzaProduct())

	require.True(t, b.SelectVariant("v-large"))
	require.True(t, b.Toggle("a-olives"))
	require.True(t, b.Toggle("a-cola"))
	assert.Equal(t, pricing.Cents(1200+150+200), b.CurrentPrice())

	b.AdjustQuantity(2)
	assert.Equal(t, pricing.Cents((1200+150+200)*3), b.CurrentPrice())

	// Quantity never drops below 1.
	b.AdjustQuantity(-10)
	assert.Equal(t, 1, b.Quantity())
	assert.Equal(t, pricing.Cents(1200+150+200), b.CurrentPrice())
}

func TestSelectVariantRejectsForeignVariant(t *testing.T) {
	b := NewBuilder(pizzaProduct())
	assert.False(t, b.SelectVariant("v-other-product"))
	assert.Equal(t, pricing.Cents(800), b.CurrentPrice())
}
