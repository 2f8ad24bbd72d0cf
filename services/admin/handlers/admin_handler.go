package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"rewear/pkg/logger"
	"rewear/pkg/models"
	"rewear/services/admin/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type AdminHandler struct {
	adminRepo   repository.AdminRepository
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewAdminHandler(adminRepo repository.AdminRepository, redisClient *redis.Client, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminRepo:   adminRepo,
		redisClient: redisClient,
		logger:      logger,
	}
}

type ReviewRequest struct {
	Status  string `json:"status" binding:"required,oneof=approved rejected"`
	Comment string `json:"comment"`
}

type GrantPointsRequest struct {
	Points      int64  `json:"points" binding:"required,gt=0"`
	Description string `json:"description"`
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	limit, offset := pagination(c)

	users, err := h.adminRepo.GetUsers(limit, offset)
	if err != nil {
		h.logger.Error("Failed to get users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

func (h *AdminHandler) BanUser(c *gin.Context) {
	h.setUserStatus(c, models.UserStatusBanned, "User banned successfully")
}

func (h *AdminHandler) UnbanUser(c *gin.Context) {
	h.setUserStatus(c, models.UserStatusActive, "User unbanned successfully")
}

func (h *AdminHandler) setUserStatus(c *gin.Context, status models.UserStatus, message string) {
	userID := c.Param("user_id")

	if err := h.adminRepo.SetUserStatus(userID, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("Failed to update user status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"user_id": userID,
		"status":  status,
	})
}

func (h *AdminHandler) GetListings(c *gin.Context) {
	limit, offset := pagination(c)
	moderation := models.ItemModeration(c.Query("moderation"))

	items, err := h.adminRepo.GetListings(moderation, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *AdminHandler) GetPendingListings(c *gin.Context) {
	limit, offset := pagination(c)

	items, err := h.adminRepo.GetListings(models.ModerationPending, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get pending listings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get pending listings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *AdminHandler) ReviewListing(c *gin.Context) {
	itemID := c.Param("item_id")

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.adminRepo.GetListingByID(itemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	moderation := models.ItemModeration(req.Status)
	if err := h.adminRepo.SetListingModeration(itemID, moderation); err != nil {
		h.logger.Error("Failed to update listing moderation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	h.invalidateItemCache(itemID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Listing reviewed successfully",
		"item_id": itemID,
		"status":  moderation,
	})
}

func (h *AdminHandler) ApproveListing(c *gin.Context) {
	itemID := c.Param("item_id")

	_, err := h.adminRepo.GetListingByID(itemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	if err := h.adminRepo.SetListingModeration(itemID, models.ModerationApproved); err != nil {
		h.logger.Error("Failed to approve listing: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve listing"})
		return
	}

	h.invalidateItemCache(itemID)

	c.JSON(http.StatusOK, gin.H{"message": "Listing approved successfully"})
}

func (h *AdminHandler) RejectListing(c *gin.Context) {
	itemID := c.Param("item_id")

	if err := h.adminRepo.SetListingModeration(itemID, models.ModerationRejected); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logger.Error("Failed to reject listing: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject listing"})
		return
	}

	h.invalidateItemCache(itemID)

	c.JSON(http.StatusOK, gin.H{"message": "Listing rejected successfully"})
}

func (h *AdminHandler) RemoveListing(c *gin.Context) {
	itemID := c.Param("item_id")

	_, err := h.adminRepo.GetListingByID(itemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
		return
	}

	if err := h.adminRepo.RemoveListing(itemID); err != nil {
		if errors.Is(err, repository.ErrItemClaimed) {
			c.JSON(http.StatusConflict, gin.H{"error": "Listing has already been redeemed or swapped"})
			return
		}
		h.logger.Error("Failed to remove listing: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove listing"})
		return
	}

	h.invalidateItemCache(itemID)

	c.JSON(http.StatusOK, gin.H{"message": "Listing removed successfully"})
}

func (h *AdminHandler) GetOrders(c *gin.Context) {
	limit, offset := pagination(c)

	transactions, err := h.adminRepo.GetTransactions(limit, offset)
	if err != nil {
		h.logger.Error("Failed to get transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}

func (h *AdminHandler) GrantPoints(c *gin.Context) {
	userID := c.Param("user_id")

	var req GrantPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description := req.Description
	if description == "" {
		description = "Points granted by administrator"
	}

	txn, err := h.adminRepo.GrantPoints(userID, req.Points, description)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if errors.Is(err, repository.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Points must be positive"})
			return
		}
		h.logger.Error("Failed to grant points: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant points"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Points granted successfully",
		"transaction": txn,
	})
}

// invalidateItemCache drops the catalog service's cached copy so a
// moderation change is visible immediately.
func (h *AdminHandler) invalidateItemCache(itemID string) {
	if h.redisClient == nil {
		return
	}
	ctx := context.Background()
	if err := h.redisClient.Del(ctx, "item:"+itemID).Err(); err != nil {
		h.logger.Error("Failed to invalidate item cache: %v", err)
	}
}

func pagination(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
