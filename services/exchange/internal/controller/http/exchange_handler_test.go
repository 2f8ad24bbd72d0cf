package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rewear/pkg/logger"
	"rewear/services/exchange/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockExchangeUseCase struct {
	mock.Mock
}

func (m *MockExchangeUseCase) RedeemItem(buyerID, itemID string, requestedPoints int64) (*entity.Transaction, error) {
	args := m.Called(buyerID, itemID, requestedPoints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockExchangeUseCase) RequestSwap(requesterID, itemID, message string) (*entity.SwapRequest, error) {
	args := m.Called(requesterID, itemID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SwapRequest), args.Error(1)
}

func (m *MockExchangeUseCase) ResolveSwap(actingUserID, swapID string, decision entity.SwapStatus) (*entity.SwapRequest, error) {
	args := m.Called(actingUserID, swapID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SwapRequest), args.Error(1)
}

func (m *MockExchangeUseCase) GetSwap(actingUserID, swapID string) (*entity.SwapRequest, error) {
	args := m.Called(actingUserID, swapID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SwapRequest), args.Error(1)
}

func (m *MockExchangeUseCase) ListSwaps(userID string) ([]*entity.SwapRequest, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.SwapRequest), args.Error(1)
}

func (m *MockExchangeUseCase) GetBalance(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockExchangeUseCase) GetHistory(userID string, limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func setupExchangeTestRouter(uc *MockExchangeUseCase, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewExchangeHandler(uc, logger.New())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/exchange/items/:item_id/redeem", handler.RedeemItem)
	r.POST("/exchange/items/:item_id/swap", handler.RequestSwap)
	r.PUT("/exchange/swaps/:swap_id", handler.ResolveSwap)
	r.GET("/exchange/swaps/:swap_id", handler.GetSwap)
	r.GET("/exchange/swaps", handler.ListSwaps)
	r.GET("/exchange/balance", handler.GetBalance)
	r.GET("/exchange/transactions", handler.GetHistory)
	return r
}

func TestRedeemItem_OK(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("RedeemItem", "user-1", "item-1", int64(0)).Return(&entity.Transaction{
		ID:     "txn-1",
		UserID: "user-1",
		ItemID: "item-1",
		Type:   entity.TransactionRedeem,
		Points: -300,
	}, nil)

	router := setupExchangeTestRouter(mockUC, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/exchange/items/item-1/redeem", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Item redeemed successfully", response["message"])
	mockUC.AssertExpectations(t)
}

func TestRedeemItem_InsufficientBalanceMapsTo402(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("RedeemItem", "user-1", "item-1", int64(0)).Return(nil, entity.ErrInsufficientBalance)

	router := setupExchangeTestRouter(mockUC, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/exchange/items/item-1/redeem", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
}

func TestRedeemItem_ConflictWhenClaimed(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("RedeemItem", "user-1", "item-1", int64(0)).Return(nil, entity.ErrItemNotAvailable)

	router := setupExchangeTestRouter(mockUC, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/exchange/items/item-1/redeem", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestSwap_Created(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("RequestSwap", "user-1", "item-1", "trade?").Return(&entity.SwapRequest{
		ID:          "swap-1",
		RequesterID: "user-1",
		OwnerID:     "owner-1",
		ItemID:      "item-1",
		Status:      entity.SwapPending,
	}, nil)

	router := setupExchangeTestRouter(mockUC, "user-1")

	body, _ := json.Marshal(map[string]string{"message": "trade?"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/exchange/items/item-1/swap", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUC.AssertExpectations(t)
}

func TestRequestSwap_SelfSwapIsBadRequest(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("RequestSwap", "user-1", "item-1", "").Return(nil, entity.ErrSelfSwap)

	router := setupExchangeTestRouter(mockUC, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/exchange/items/item-1/swap", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveSwap_OK(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("ResolveSwap", "owner-1", "swap-1", entity.SwapAccepted).Return(&entity.SwapRequest{
		ID:     "swap-1",
		Status: entity.SwapAccepted,
	}, nil)

	router := setupExchangeTestRouter(mockUC, "owner-1")

	body, _ := json.Marshal(map[string]string{"decision": "accepted"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/exchange/swaps/swap-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}

func TestResolveSwap_InvalidDecisionRejectedByBinding(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	router := setupExchangeTestRouter(mockUC, "owner-1")

	body, _ := json.Marshal(map[string]string{"decision": "maybe"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/exchange/swaps/swap-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "ResolveSwap", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveSwap_NotOwnerIsForbidden(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("ResolveSwap", "stranger", "swap-1", entity.SwapDeclined).Return(nil, entity.ErrNotAuthorized)

	router := setupExchangeTestRouter(mockUC, "stranger")

	body, _ := json.Marshal(map[string]string{"decision": "declined"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/exchange/swaps/swap-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestResolveSwap_AlreadyResolvedIsConflict(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("ResolveSwap", "owner-1", "swap-1", entity.SwapDeclined).Return(nil, entity.ErrAlreadyResolved)

	router := setupExchangeTestRouter(mockUC, "owner-1")

	body, _ := json.Marshal(map[string]string{"decision": "declined"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/exchange/swaps/swap-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetBalance_OK(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("GetBalance", "user-1").Return(int64(420), nil)

	router := setupExchangeTestRouter(mockUC, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/exchange/balance", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(420), response["points_balance"])
}

func TestGetHistory_DefaultPagination(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("GetHistory", "user-1", 50, 0).Return([]*entity.Transaction{
		{ID: "txn-1", Points: -300, Type: entity.TransactionRedeem},
	}, nil)

	router := setupExchangeTestRouter(mockUC, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/exchange/transactions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(1), response["count"])
	mockUC.AssertExpectations(t)
}

func TestGetHistory_ClampsLimit(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("GetHistory", "user-1", 50, 0).Return([]*entity.Transaction{}, nil)

	router := setupExchangeTestRouter(mockUC, "user-1")

	// Over-limit query falls back to the default.
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/exchange/transactions?limit=5000", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}

func TestGetSwap_NotFound(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("GetSwap", "user-1", "missing").Return(nil, entity.ErrNotFound)

	router := setupExchangeTestRouter(mockUC, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/exchange/swaps/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSwaps_OK(t *testing.T) {
	mockUC := new(MockExchangeUseCase)
	mockUC.On("ListSwaps", "user-1").Return([]*entity.SwapRequest{
		{ID: "swap-1", Status: entity.SwapPending},
		{ID: "swap-2", Status: entity.SwapDeclined},
	}, nil)

	router := setupExchangeTestRouter(mockUC, "user-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/exchange/swaps", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])
}
