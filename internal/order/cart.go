package order

import (
	"github.com/google/uuid"

	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

// cartVersion tags the persisted cart record so a future layout change can
// discard stale carts instead of silently corrupting them.
const cartVersion = 1

type DeliveryType string

const (
	Delivery DeliveryType = "delivery"
	Pickup   DeliveryType = "pickup"
)

// ProductSnapshot is the slice of a product a line item keeps. Prices live
// on the variant and addon snapshots, so a later catalog edit never changes
// an already carted item.
type ProductSnapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LineItem is one configured product instance in the cart.
type LineItem struct {
	UID            string          `json:"uid"`
	Product        ProductSnapshot `json:"product"`
	Variant        catalog.Variant `json:"variant"`
	SelectedAddons []catalog.Addon `json:"selectedAddons"`
	Quantity       pricing.Count   `json:"quantity"`
}

// Total is (variant price + addon prices) x quantity, in minor units.
func (li LineItem) Total() pricing.Cents {
	price := li.Variant.Price
	for _, a := range li.SelectedAddons {
		price += a.Price
	}
	return price * pricing.Cents(li.Quantity)
}

// Cart holds the line items for one session. It is a plain value owned and
// persisted by whoever constructed it; mutations happen synchronously in
// response to one user action at a time.
type Cart struct {
	Version      int          `json:"version"`
	Items        []LineItem   `json:"items"`
	DeliveryType DeliveryType `json:"deliveryType"`
}

func NewCart() *Cart {
	return &Cart{
		Version:      cartVersion,
		Items:        []LineItem{},
		DeliveryType: Delivery,
	}
}

// Add appends the item under a fresh instance id.
func (c *Cart) Add(item LineItem) LineItem {
	if item.UID == "" {
		item.UID = uuid.New().String()
	}
	c.Items = append(c.Items, item)
	return item
}

// Remove deletes by instance id. Removing an absent id is a no-op.
func (c *Cart) Remove(uid string) {
	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.UID != uid {
			kept = append(kept, it)
		}
	}
	c.Items = kept
}

// UpdateQuantity applies a delta to the item's quantity. A result of zero
// or less removes the item; a non-positive quantity never survives.
func (c *Cart) UpdateQuantity(uid string, delta int) {
	for i := range c.Items {
		if c.Items[i].UID != uid {
			continue
		}
		if int(c.Items[i].Quantity)+delta <= 0 {
			c.Remove(uid)
		} else {
			c.Items[i].Quantity += pricing.Count(delta)
		}
		return
	}
}

// Subtotal sums every item total with exact integer arithmetic.
func (c *Cart) Subtotal() pricing.Cents {
	var total pricing.Cents
	for _, it := range c.Items {
		total += it.Total()
	}
	return total
}

func (c *Cart) Clear() {
	c.Items = []LineItem{}
}
