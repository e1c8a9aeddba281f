package order

import (
	"fmt"
	"strings"

	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

const messageRule = "--------------------------------"

// Customer is the checkout form payload. Fulfillment comes from the
// explicit Type field, never inferred from the address.
type Customer struct {
	Name    string       `json:"name"`
	Phone   string       `json:"phone"`
	Type    DeliveryType `json:"type"`
	Address string       `json:"address"`
	Notes   string       `json:"notes"`
}

// BuildOrderMessage renders the canonical plain-text order summary handed
// to the delivery channel. Pure function of its inputs: same cart, same
// text. Items appear in cart insertion order.
func BuildOrderMessage(items []LineItem, subtotal, deliveryFee pricing.Cents, settings catalog.StoreSettings, customer Customer) string {
	isDelivery := customer.Type == Delivery
	total := subtotal
	if isDelivery {
		total += deliveryFee
	}

	var msg strings.Builder

	fmt.Fprintf(&msg, "*NEW ORDER - %s*\n", settings.Name)
	msg.WriteString(messageRule + "\n")
	fmt.Fprintf(&msg, "*Customer:* %s\n", customer.Name)
	fmt.Fprintf(&msg, "*Phone:* %s\n", customer.Phone)
	if isDelivery {
		msg.WriteString("*Type:* Delivery\n")
		fmt.Fprintf(&msg, "*Address:* %s\n", customer.Address)
	} else {
		msg.WriteString("*Type:* Pickup\n")
	}
	if customer.Notes != "" {
		fmt.Fprintf(&msg, "*Notes:* %s\n", customer.Notes)
	}

	msg.WriteString("\n*ORDER DETAILS:*\n")
	for i, item := range items {
		fmt.Fprintf(&msg, "%d. %s (%s, %s) x%d\n",
			i+1, item.Product.Name, item.Variant.Size, item.Variant.Crust, item.Quantity)

		if len(item.SelectedAddons) > 0 {
			names := make([]string, len(item.SelectedAddons))
			for j, a := range item.SelectedAddons {
				names[j] = a.Name
			}
			fmt.Fprintf(&msg, "   + %s\n", strings.Join(names, ", "))
		}

		fmt.Fprintf(&msg, "   Item Total: %s\n\n", pricing.Format(item.Total(), settings.Currency))
	}

	msg.WriteString(messageRule + "\n")
	fmt.Fprintf(&msg, "Subtotal: %s\n", pricing.Format(subtotal, settings.Currency))
	if isDelivery {
		fmt.Fprintf(&msg, "Delivery Fee: %s\n", pricing.Format(deliveryFee, settings.Currency))
	}
	fmt.Fprintf(&msg, "*GRAND TOTAL: %s*\n", pricing.Format(total, settings.Currency))

	return msg.String()
}
