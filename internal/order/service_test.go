package order

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

// --------------------------------------------------
// Test doubles
// --------------------------------------------------

type stubProducts struct {
	products map[string]catalog.Product
}

func (s *stubProducts) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return &p, nil
}

type fakeSender struct {
	to   string
	body string
	err  error
}

func (f *fakeSender) SendText(ctx context.Context, to string, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.body = body
	return nil
}

func newTestService(sender *fakeSender) (*Service, *InMemoryCartStore) {
	p := pizzaProduct()
	store := NewInMemoryCartStore()
	svc := NewService(
		&stubProducts{products: map[string]catalog.Product{p.ID: p}},
		store,
		sender,
		"+92 315-2967579",
	)
	return svc, store
}

// --------------------------------------------------
// Configuration replay
// --------------------------------------------------

func TestAddConfiguredItem(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(&fakeSender{})

	cart, err := svc.AddConfiguredItem(ctx, "s1", AddItemRequest{
		ProductID: "p-pizza",
		VariantID: "v-large",
		AddonIDs:  []string{"a-olives", "a-cola"},
		Quantity:  2,
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	assert.Equal(t, "v-large", item.Variant.ID)
	assert.Len(t, item.SelectedAddons, 2)
	assert.Equal(t, pricing.Count(2), item.Quantity)
	assert.Equal(t, pricing.Cents((1200+150+200)*2), cart.Subtotal())

	// Persisted, not just returned.
	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
}

func TestAddConfiguredItemDefaultsVariantAndQuantity(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&fakeSender{})

	cart, err := svc.AddConfiguredItem(ctx, "s1", AddItemRequest{
		ProductID: "p-pizza",
		AddonIDs:  []string{"a-olives"},
	})
	require.NoError(t, err)

	item := cart.Items[0]
	assert.Equal(t, "v-small", item.Variant.ID)
	assert.Equal(t, pricing.Count(1), item.Quantity)
}

func TestAddConfiguredItemRejectsBadSelections(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(&fakeSender{})

	cases := []struct {
		name string
		req  AddItemRequest
	}{
		{"missing required group", AddItemRequest{ProductID: "p-pizza"}},
		{"over ceiling", AddItemRequest{ProductID: "p-pizza", AddonIDs: []string{"a-olives", "a-corn", "a-jalapeno"}}},
		{"unknown addon", AddItemRequest{ProductID: "p-pizza", AddonIDs: []string{"a-nope"}}},
		{"foreign variant", AddItemRequest{ProductID: "p-pizza", VariantID: "v-nope", AddonIDs: []string{"a-olives"}}},
		{"unknown product", AddItemRequest{ProductID: "p-nope"}},
		{"empty product id", AddItemRequest{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddConfiguredItem(ctx, "s1", tc.req)
			assert.Error(t, err)
		})
	}

	// Nothing leaked into the cart.
	cart, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestAddConfiguredItemRejectsInactiveProduct(t *testing.T) {
	ctx := context.Background()
	p := pizzaProduct()
	p.IsActive = false

	svc := NewService(
		&stubProducts{products: map[string]catalog.Product{p.ID: p}},
		NewInMemoryCartStore(),
		&fakeSender{},
		"0300",
	)

	_, err := svc.AddConfiguredItem(ctx, "s1", AddItemRequest{ProductID: "p-pizza", AddonIDs: []string{"a-olives"}})
	assert.ErrorIs(t, err, ErrValidation)
}

// --------------------------------------------------
// Cart mutations through the service
// --------------------------------------------------

func TestServiceCartLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(&fakeSender{})

	cart, err := svc.AddConfiguredItem(ctx, "s1", AddItemRequest{ProductID: "p-pizza", AddonIDs: []string{"a-olives"}})
	require.NoError(t, err)
	uid := cart.Items[0].UID

	cart, err = svc.UpdateQuantity(ctx, "s1", uid, 2)
	require.NoError(t, err)
	assert.Equal(t, pricing.Count(3), cart.Items[0].Quantity)

	cart, err = svc.SetDeliveryType(ctx, "s1", Pickup)
	require.NoError(t, err)
	assert.Equal(t, Pickup, cart.DeliveryType)

	_, err = svc.SetDeliveryType(ctx, "s1", DeliveryType("teleport"))
	assert.ErrorIs(t, err, ErrValidation)

	cart, err = svc.UpdateQuantity(ctx, "s1", uid, -3)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

// --------------------------------------------------
// Submission
// --------------------------------------------------

func TestSubmitSendsToNormalizedOwnerChat(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{}
	svc, _ := newTestService(sender)

	items, settings := messageFixture()
	err := svc.Submit(ctx, SubmitRequest{
		Items:       items,
		Subtotal:    3500,
		DeliveryFee: 299,
		Settings:    settings,
		Customer:    Customer{Name: "Ali", Phone: "0300", Type: Delivery, Address: "12 Main St"},
	})
	require.NoError(t, err)

	assert.Equal(t, "923152967579@c.us", sender.to)
	assert.Contains(t, sender.body, "*GRAND TOTAL: $37.99*")
}

// A failed send must leave the session cart untouched so the user can retry.
func TestSubmitFailurePreservesCart(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{err: errors.New("gateway down")}
	svc, store := newTestService(sender)

	_, err := svc.AddConfiguredItem(ctx, "s1", AddItemRequest{ProductID: "p-pizza", AddonIDs: []string{"a-olives"}})
	require.NoError(t, err)

	items, settings := messageFixture()
	err = svc.Submit(ctx, SubmitRequest{Items: items, Settings: settings, Customer: Customer{Type: Pickup}})
	require.Error(t, err)

	cart, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

// Success does not clear the cart either: clearing is an explicit action.
func TestSubmitSuccessDoesNotClearCart(t *testing.T) {
	ctx := context.Background()
	sender := &fakeSender{}
	svc, store := newTestService(sender)

	_, err := svc.AddConfiguredItem(ctx, "s1", AddItemRequest{ProductID: "p-pizza", AddonIDs: []string{"a-olives"}})
	require.NoError(t, err)

	items, settings := messageFixture()
	require.NoError(t, svc.Submit(ctx, SubmitRequest{Items: items, Settings: settings, Customer: Customer{Type: Pickup}}))

	cart, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}
