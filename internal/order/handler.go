package order

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usamaejaz9741/pizza-shop/internal/metrics"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func sessionID(c *gin.Context) (string, bool) {
	sid := c.GetHeader("X-Cart-Session")
	if sid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Cart-Session header"})
		return "", false
	}
	return sid, true
}

func respondCart(c *gin.Context, cart *Cart, err error) {
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			log.Printf("cart operation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "cart operation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":     cart,
		"subtotal": cart.Subtotal(),
	})
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

func (h *Handler) GetCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	cart, err := h.service.GetCart(c.Request.Context(), sid)
	respondCart(c, cart, err)
}

func (h *Handler) AddItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cart, err := h.service.AddConfiguredItem(c.Request.Context(), sid, req)
	respondCart(c, cart, err)
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cart, err := h.service.UpdateQuantity(c.Request.Context(), sid, c.Param("uid"), req.Delta)
	respondCart(c, cart, err)
}

func (h *Handler) RemoveItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	cart, err := h.service.RemoveItem(c.Request.Context(), sid, c.Param("uid"))
	respondCart(c, cart, err)
}

func (h *Handler) ClearCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	cart, err := h.service.ClearCart(c.Request.Context(), sid)
	respondCart(c, cart, err)
}

func (h *Handler) SetDeliveryType(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req struct {
		DeliveryType DeliveryType `json:"deliveryType"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cart, err := h.service.SetDeliveryType(c.Request.Context(), sid, req.DeliveryType)
	respondCart(c, cart, err)
}

// --------------------------------------------------
// Order submission
// --------------------------------------------------

// SubmitOrder accepts the checkout payload and pushes the formatted order
// through the WhatsApp channel. The response mirrors the channel contract:
// {ok:true} or a 500 with {ok:false}.
func (h *Handler) SubmitOrder(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "invalid request body"})
		return
	}

	if err := h.service.Submit(c.Request.Context(), req); err != nil {
		log.Printf("order submission failed: %v", err)
		metrics.OrdersFailed.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	metrics.OrdersSubmitted.Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
