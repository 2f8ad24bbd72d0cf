package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"rewear/pkg/logger"
	"rewear/services/catalog/internal/entity"
	"rewear/services/catalog/internal/repo/persistent"
	"rewear/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	itemUseCase usecase.ItemUseCase
	logger      *logger.Logger
}

func NewCatalogHandler(itemUseCase usecase.ItemUseCase, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		itemUseCase: itemUseCase,
		logger:      logger,
	}
}

type CreateItemRequest struct {
	Title         string `form:"title" binding:"required"`
	Description   string `form:"description"`
	Category      string `form:"category"`
	Type          string `form:"type"`
	Size          string `form:"size"`
	Condition     string `form:"condition"`
	Tags          string `form:"tags"`
	Brand         string `form:"brand"`
	OriginalPrice int64  `form:"original_price" binding:"omitempty,min=0"`
	AgeMonths     int    `form:"age_months" binding:"omitempty,min=0"`
}

// CreateItem godoc
// @Summary      Create a listing
// @Description  Upload a garment with images; the point value is estimated from its attributes and the listing awaits moderation
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Item title"
// @Param        description formData string false "Item description"
// @Param        category formData string false "Category"
// @Param        type formData string false "Garment type"
// @Param        size formData string false "Size"
// @Param        condition formData string false "Condition"
// @Param        tags formData string false "Comma-separated tags"
// @Param        brand formData string false "Brand"
// @Param        original_price formData int false "Original retail price"
// @Param        age_months formData int false "Age in months"
// @Param        images formData file true "Image files (jpg/jpeg/png), up to 10"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /items [post]
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}

	imageFiles := form.File["images"]
	if len(imageFiles) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "At least one image file is required"})
		return
	}

	var tags []string
	if req.Tags != "" {
		for _, tag := range strings.Split(req.Tags, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}

	item, err := h.itemUseCase.CreateItem(userID, usecase.CreateItemInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Type:          req.Type,
		Size:          req.Size,
		Condition:     req.Condition,
		Tags:          tags,
		Brand:         req.Brand,
		OriginalPrice: req.OriginalPrice,
		AgeMonths:     req.AgeMonths,
	}, imageFiles)
	if err != nil {
		h.logger.Error("Failed to create item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// ListItems godoc
// @Summary      List the catalog
// @Description  Approved, still-available listings with optional filters
// @Tags         items
// @Produce      json
// @Param        category query string false "Filter by category"
// @Param        size query string false "Filter by size"
// @Param        condition query string false "Filter by condition"
// @Param        search query string false "Search in titles"
// @Param        uploaded_by query string false "Filter by uploader"
// @Param        limit query int false "Number of items"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	limit, offset := pagination(c, 20)

	filter := persistent.ItemFilter{
		Category:   c.Query("category"),
		Size:       c.Query("size"),
		Condition:  c.Query("condition"),
		Search:     c.Query("search"),
		UploadedBy: c.Query("uploaded_by"),
	}

	items, err := h.itemUseCase.ListItems(filter, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// GetItem godoc
// @Summary      Get item by ID
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /items/{id} [get]
func (h *CatalogHandler) GetItem(c *gin.Context) {
	itemID := c.Param("id")

	item, err := h.itemUseCase.GetItem(itemID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
			return
		}
		h.logger.Error("Failed to get item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetMyItems godoc
// @Summary      List own listings
// @Description  All listings of the authenticated user regardless of status
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of items"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /items/mine [get]
func (h *CatalogHandler) GetMyItems(c *gin.Context) {
	userID := c.GetString("user_id")
	limit, offset := pagination(c, 20)

	items, err := h.itemUseCase.GetUserItems(userID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get user items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

type UpdateItemRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	Type          *string  `json:"type"`
	Size          *string  `json:"size"`
	Condition     *string  `json:"condition"`
	Tags          []string `json:"tags"`
	Brand         *string  `json:"brand"`
	OriginalPrice *int64   `json:"original_price"`
	AgeMonths     *int     `json:"age_months"`
}

// UpdateItem godoc
// @Summary      Update a listing
// @Description  Only the uploader may update, and only while the item is still available
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item ID"
// @Param        request body UpdateItemRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /items/{id} [put]
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	itemID := c.Param("id")
	userID := c.GetString("user_id")

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.itemUseCase.UpdateItem(itemID, userID, usecase.UpdateItemInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Type:          req.Type,
		Size:          req.Size,
		Condition:     req.Condition,
		Tags:          req.Tags,
		Brand:         req.Brand,
		OriginalPrice: req.OriginalPrice,
		AgeMonths:     req.AgeMonths,
	})
	if err != nil {
		h.respondError(c, err, "Failed to update item")
		return
	}

	c.JSON(http.StatusOK, item)
}

// WithdrawItem godoc
// @Summary      Withdraw a listing
// @Description  Only the uploader may withdraw, and only while the item is still available
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Item ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /items/{id} [delete]
func (h *CatalogHandler) WithdrawItem(c *gin.Context) {
	itemID := c.Param("id")
	userID := c.GetString("user_id")

	if err := h.itemUseCase.WithdrawItem(itemID, userID); err != nil {
		h.respondError(c, err, "Failed to withdraw item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item withdrawn successfully"})
}

func (h *CatalogHandler) respondError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrItemLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error(logMsg+": %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func pagination(c *gin.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	return limit, offset
}
