package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/usamaejaz9741/pizza-shop/internal/pricing"
)

// ImageStorage uploads a product image and returns its public URL.
type ImageStorage interface {
	Upload(ctx context.Context, key string, file multipart.File) (string, error)
}

type Handler struct {
	service *Service
	images  ImageStorage
}

func NewHandler(service *Service, images ImageStorage) *Handler {
	return &Handler{service: service, images: images}
}

func respondErr(c *gin.Context, err error) {
	if errors.Is(err, ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("catalog operation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// --------------------------------------------------
// Store data
// --------------------------------------------------

func (h *Handler) GetStoreData(c *gin.Context) {
	data, err := h.service.GetStoreData(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *Handler) GetAdminData(c *gin.Context) {
	data, err := h.service.GetAdminData(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req StoreSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateSettings(c.Request.Context(), req); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (h *Handler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	category, err := h.service.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *Handler) ReorderCategories(c *gin.Context) {
	var req struct {
		Items []CategoryOrder `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.ReorderCategories(c.Request.Context(), req.Items); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// Products
// --------------------------------------------------

func (h *Handler) CreateProduct(c *gin.Context) {
	var req struct {
		CategoryID  string        `json:"category_id"`
		Name        string        `json:"name"`
		Description string        `json:"description"`
		ImageURL    string        `json:"image_url"`
		Price       pricing.Cents `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), req.CategoryID, req.Name, req.Description, req.ImageURL, req.Price)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) SetProductStatus(c *gin.Context) {
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetProductStatus(c.Request.Context(), c.Param("id"), req.IsActive); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UploadProductImage stores the image in object storage and points the
// product at its public URL.
func (h *Handler) UploadProductImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondErr(c, err)
		return
	}
	defer file.Close()

	productID := c.Param("id")
	key := fmt.Sprintf("products/%s/%s%s", productID, uuid.New().String(), ext)

	url, err := h.images.Upload(c.Request.Context(), key, file)
	if err != nil {
		respondErr(c, fmt.Errorf("uploadProductImage: %w", err))
		return
	}

	if err := h.service.SetProductImage(c.Request.Context(), productID, url); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// --------------------------------------------------
// Variants
// --------------------------------------------------

func (h *Handler) CreateVariant(c *gin.Context) {
	var req struct {
		ProductID string        `json:"product_id"`
		Size      string        `json:"size"`
		Crust     string        `json:"crust"`
		Price     pricing.Cents `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	variant, err := h.service.CreateVariant(c.Request.Context(), req.ProductID, req.Size, req.Crust, req.Price)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, variant)
}

func (h *Handler) UpdateVariant(c *gin.Context) {
	var req struct {
		Size  string        `json:"size"`
		Crust string        `json:"crust"`
		Price pricing.Cents `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.UpdateVariant(c.Request.Context(), c.Param("id"), req.Size, req.Crust, req.Price); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteVariant(c *gin.Context) {
	if err := h.service.DeleteVariant(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// Addon groups & addons
// --------------------------------------------------

func (h *Handler) CreateAddonGroup(c *gin.Context) {
	var req struct {
		Name       string    `json:"name"`
		Type       GroupType `json:"type"`
		MinSelect  int       `json:"min_select"`
		MaxSelect  int       `json:"max_select"`
		IsRequired bool      `json:"is_required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	group, err := h.service.CreateAddonGroup(c.Request.Context(), req.Name, req.Type, req.MinSelect, req.MaxSelect, req.IsRequired)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *Handler) DeleteAddonGroup(c *gin.Context) {
	if err := h.service.DeleteAddonGroup(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) CreateAddon(c *gin.Context) {
	var req struct {
		GroupID string        `json:"group_id"`
		Name    string        `json:"name"`
		Price   pricing.Cents `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	addon, err := h.service.CreateAddon(c.Request.Context(), req.GroupID, req.Name, req.Price)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, addon)
}

func (h *Handler) DeleteAddon(c *gin.Context) {
	if err := h.service.DeleteAddon(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) SetAddonGroupLink(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id"`
		GroupID   string `json:"group_id"`
		IsLinked  bool   `json:"is_linked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SetAddonGroupLink(c.Request.Context(), req.ProductID, req.GroupID, req.IsLinked); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
