package http

import (
	"errors"
	"net/http"
	"strconv"

	"rewear/pkg/logger"
	"rewear/services/exchange/internal/entity"
	"rewear/services/exchange/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ExchangeHandler struct {
	exchangeUseCase usecase.ExchangeUseCase
	logger          *logger.Logger
}

func NewExchangeHandler(exchangeUseCase usecase.ExchangeUseCase, logger *logger.Logger) *ExchangeHandler {
	return &ExchangeHandler{
		exchangeUseCase: exchangeUseCase,
		logger:          logger,
	}
}

type RedeemRequest struct {
	Points int64 `json:"points" binding:"omitempty,min=0"`
}

type SwapRequestBody struct {
	Message string `json:"message" binding:"max=500"`
}

type ResolveSwapRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accepted declined"`
}

// RedeemItem godoc
// @Summary      Redeem an item with points
// @Description  Spend points to acquire an item; the charge is always the item's points value
// @Tags         exchange
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        item_id path string true "Item ID"
// @Param        request body RedeemRequest false "Optional expected points value"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      402  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /exchange/items/{item_id}/redeem [post]
func (h *ExchangeHandler) RedeemItem(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("item_id")

	// Body is optional; an empty request redeems at the item's value.
	var req RedeemRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	txn, err := h.exchangeUseCase.RedeemItem(userID, itemID, req.Points)
	if err != nil {
		h.respondError(c, err, "Failed to redeem item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Item redeemed successfully",
		"transaction": txn,
	})
}

// RequestSwap godoc
// @Summary      Request a swap
// @Description  Ask the owner of an available item for a direct swap
// @Tags         exchange
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        item_id path string true "Item ID"
// @Param        request body SwapRequestBody false "Optional message to the owner"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /exchange/items/{item_id}/swap [post]
func (h *ExchangeHandler) RequestSwap(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("item_id")

	var req SwapRequestBody
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	swap, err := h.exchangeUseCase.RequestSwap(userID, itemID, req.Message)
	if err != nil {
		h.respondError(c, err, "Failed to request swap")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"swap_request": swap})
}

// ResolveSwap godoc
// @Summary      Accept or decline a swap request
// @Description  Only the item owner may resolve; accepting settles the swap
// @Tags         exchange
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        swap_id path string true "Swap request ID"
// @Param        request body ResolveSwapRequest true "Decision"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /exchange/swaps/{swap_id} [put]
func (h *ExchangeHandler) ResolveSwap(c *gin.Context) {
	userID := c.GetString("user_id")
	swapID := c.Param("swap_id")

	var req ResolveSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	swap, err := h.exchangeUseCase.ResolveSwap(userID, swapID, entity.SwapStatus(req.Decision))
	if err != nil {
		h.respondError(c, err, "Failed to resolve swap")
		return
	}

	c.JSON(http.StatusOK, gin.H{"swap_request": swap})
}

// GetSwap godoc
// @Summary      Get a swap request
// @Description  Visible only to the requester and the item owner
// @Tags         exchange
// @Produce      json
// @Security     BearerAuth
// @Param        swap_id path string true "Swap request ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /exchange/swaps/{swap_id} [get]
func (h *ExchangeHandler) GetSwap(c *gin.Context) {
	userID := c.GetString("user_id")
	swapID := c.Param("swap_id")

	swap, err := h.exchangeUseCase.GetSwap(userID, swapID)
	if err != nil {
		h.respondError(c, err, "Failed to get swap")
		return
	}

	c.JSON(http.StatusOK, gin.H{"swap_request": swap})
}

// ListSwaps godoc
// @Summary      List swap requests
// @Description  All swap requests where the authenticated user is requester or owner
// @Tags         exchange
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /exchange/swaps [get]
func (h *ExchangeHandler) ListSwaps(c *gin.Context) {
	userID := c.GetString("user_id")

	swaps, err := h.exchangeUseCase.ListSwaps(userID)
	if err != nil {
		h.respondError(c, err, "Failed to list swaps")
		return
	}

	c.JSON(http.StatusOK, gin.H{"swap_requests": swaps, "count": len(swaps)})
}

// GetBalance godoc
// @Summary      Get points balance
// @Tags         exchange
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /exchange/balance [get]
func (h *ExchangeHandler) GetBalance(c *gin.Context) {
	userID := c.GetString("user_id")

	balance, err := h.exchangeUseCase.GetBalance(userID)
	if err != nil {
		h.respondError(c, err, "Failed to get balance")
		return
	}

	c.JSON(http.StatusOK, gin.H{"points_balance": balance})
}

// GetHistory godoc
// @Summary      Get transaction history
// @Description  Ledger entries for the authenticated user, newest first
// @Tags         exchange
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of transactions"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /exchange/transactions [get]
func (h *ExchangeHandler) GetHistory(c *gin.Context) {
	userID := c.GetString("user_id")
	limit := 50
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

	transactions, err := h.exchangeUseCase.GetHistory(userID, limit, offset)
	if err != nil {
		h.respondError(c, err, "Failed to get transactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}

func (h *ExchangeHandler) respondError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, entity.ErrInsufficientBalance):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrItemNotAvailable),
		errors.Is(err, entity.ErrDuplicatePending),
		errors.Is(err, entity.ErrAlreadyResolved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrSelfSwap), errors.Is(err, entity.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error(logMsg+": %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
