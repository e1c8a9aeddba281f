package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
	"github.com/usamaejaz9741/pizza-shop/internal/whatsapp"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

// ProductReader is the slice of the catalog the order flow needs.
type ProductReader interface {
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
}

type Service struct {
	products   ProductReader
	carts      CartStore
	sender     whatsapp.Sender
	ownerPhone string
}

func NewService(products ProductReader, carts CartStore, sender whatsapp.Sender, ownerPhone string) *Service {
	return &Service{
		products:   products,
		carts:      carts,
		sender:     sender,
		ownerPhone: ownerPhone,
	}
}

// --------------------------------------------------
// Cart operations
// --------------------------------------------------

func (s *Service) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.carts.Load(ctx, sessionID)
}

// AddItemRequest is a finished configuration submitted by the storefront.
type AddItemRequest struct {
	ProductID string        `json:"product_id"`
	VariantID string        `json:"variant_id"`
	AddonIDs  []string      `json:"addon_ids"`
	Quantity  pricing.Count `json:"quantity"`
}

// AddConfiguredItem replays the submitted configuration through the builder
// so every cardinality and step rule is enforced server-side, then appends
// the finalized line item to the session cart.
func (s *Service) AddConfiguredItem(ctx context.Context, sessionID string, req AddItemRequest) (*Cart, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("product_id is required: %w", ErrValidation)
	}

	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", ErrNotFound)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product is not available: %w", ErrValidation)
	}

	b := NewBuilder(*product)

	if req.VariantID != "" && !b.SelectVariant(req.VariantID) {
		return nil, fmt.Errorf("variant does not belong to product: %w", ErrValidation)
	}
	for _, addonID := range req.AddonIDs {
		if !b.Toggle(addonID) {
			return nil, fmt.Errorf("addon selection violates group rules: %w", ErrValidation)
		}
	}
	if req.Quantity > 1 {
		b.AdjustQuantity(int(req.Quantity) - 1)
	}

	var item *LineItem
	for item == nil {
		item, err = b.Next()
		if err != nil {
			return nil, fmt.Errorf("incomplete configuration: %w", ErrValidation)
		}
	}

	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Add(*item)

	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, uid string, delta int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *Cart) {
		cart.UpdateQuantity(uid, delta)
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, uid string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *Cart) {
		cart.Remove(uid)
	})
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(cart *Cart) {
		cart.Clear()
	})
}

func (s *Service) SetDeliveryType(ctx context.Context, sessionID string, t DeliveryType) (*Cart, error) {
	if t != Delivery && t != Pickup {
		return nil, fmt.Errorf("delivery type must be delivery or pickup: %w", ErrValidation)
	}
	return s.mutate(ctx, sessionID, func(cart *Cart) {
		cart.DeliveryType = t
	})
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*Cart)) (*Cart, error) {
	cart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fn(cart)
	if err := s.carts.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// --------------------------------------------------
// Order submission
// --------------------------------------------------

// SubmitRequest is the checkout payload. It crosses a serialization
// boundary, so all numeric fields decode leniently.
type SubmitRequest struct {
	Items       []LineItem            `json:"items"`
	Subtotal    pricing.Cents         `json:"subtotal"`
	DeliveryFee pricing.Cents         `json:"deliveryFee"`
	Settings    catalog.StoreSettings `json:"settings"`
	Customer    Customer              `json:"customer"`
}

// Submit formats the order text and hands it to the delivery channel.
// The cart is deliberately left untouched so a failed send can be retried.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) error {
	body := BuildOrderMessage(req.Items, req.Subtotal, req.DeliveryFee, req.Settings, req.Customer)
	return s.sender.SendText(ctx, whatsapp.ChatID(s.ownerPhone), body)
}
