package order

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
)

func messageFixture() ([]LineItem, catalog.StoreSettings) {
	itemA := LineItem{
		UID:     "u1",
		Product: ProductSnapshot{ID: "p1", Name: "Pepperoni"},
		Variant: catalog.Variant{ID: "v1", Size: "Large", Crust: "Thin", Price: 1200},
		SelectedAddons: []catalog.Addon{
			{ID: "a1", GroupID: "g1", Name: "Olives", Price: 150},
		},
		Quantity: 2,
	}
	itemB := LineItem{
		UID:            "u2",
		Product:        ProductSnapshot{ID: "p2", Name: "Garlic Bread"},
		Variant:        catalog.Variant{ID: "v2", Size: "Standard", Crust: "Original", Price: 800},
		SelectedAddons: []catalog.Addon{},
		Quantity:       1,
	}

	settings := catalog.StoreSettings{
		Name:             "Pizza Shop",
		Currency:         "$",
		Phone:            "923152967579",
		DeliveryFeeCents: 299,
	}

	return []LineItem{itemA, itemB}, settings
}

func TestBuildOrderMessageDelivery(t *testing.T) {
	items, settings := messageFixture()
	customer := Customer{
		Name:    "Ali",
		Phone:   "03001234567",
		Type:    Delivery,
		Address: "12 Main St",
		Notes:   "ring the bell",
	}

	msg := BuildOrderMessage(items, 3500, 299, settings, customer)

	want := strings.Join([]string{
		"*NEW ORDER - Pizza Shop*",
		"--------------------------------",
		"*Customer:* Ali",
		"*Phone:* 03001234567",
		"*Type:* Delivery",
		"*Address:* 12 Main St",
		"*Notes:* ring the bell",
		"",
		"*ORDER DETAILS:*",
		"1. Pepperoni (Large, Thin) x2",
		"   + Olives",
		"   Item Total: $27.00",
		"",
		"2. Garlic Bread (Standard, Original) x1",
		"   Item Total: $8.00",
		"",
		"--------------------------------",
		"Subtotal: $35.00",
		"Delivery Fee: $2.99",
		"*GRAND TOTAL: $37.99*",
		"",
	}, "\n")

	assert.Equal(t, want, msg)
}

func TestBuildOrderMessagePickupOmitsFeeAndAddress(t *testing.T) {
	items, settings := messageFixture()
	customer := Customer{Name: "Sara", Phone: "0311", Type: Pickup}

	msg := BuildOrderMessage(items, 3500, 299, settings, customer)

	assert.Contains(t, msg, "*Type:* Pickup\n")
	assert.NotContains(t, msg, "*Address:*")
	assert.NotContains(t, msg, "*Notes:*")
	assert.NotContains(t, msg, "Delivery Fee:")
	assert.Contains(t, msg, "*GRAND TOTAL: $35.00*")
}

func TestBuildOrderMessageIsDeterministic(t *testing.T) {
	items, settings := messageFixture()
	customer := Customer{Name: "Ali", Phone: "0300", Type: Delivery, Address: "12 Main St"}

	first := BuildOrderMessage(items, 3500, 299, settings, customer)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildOrderMessage(items, 3500, 299, settings, customer))
	}
}

// Checkout payloads come off the wire loosely typed: garbage numerics must
// render as $0.00, not break the message.
func TestSubmitPayloadCoercion(t *testing.T) {
	raw := `{
		"items": [
			{
				"uid": "u1",
				"product": {"id": "p1", "name": "Pepperoni"},
				"variant": {"id": "v1", "size": "Large", "crust": "Thin", "price": "oops"},
				"selectedAddons": [],
				"quantity": null
			}
		],
		"subtotal": "garbage",
		"deliveryFee": null,
		"settings": {"name": "Pizza Shop", "currency": "$"},
		"customer": {"name": "Ali", "phone": "0300", "type": "delivery", "address": "x"}
	}`

	var req SubmitRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &req))

	msg := BuildOrderMessage(req.Items, req.Subtotal, req.DeliveryFee, req.Settings, req.Customer)

	assert.Contains(t, msg, "1. Pepperoni (Large, Thin) x0")
	assert.Contains(t, msg, "Item Total: $0.00")
	assert.Contains(t, msg, "Subtotal: $0.00")
	assert.Contains(t, msg, "*GRAND TOTAL: $0.00*")
}
