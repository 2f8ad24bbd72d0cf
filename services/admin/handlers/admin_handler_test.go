package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"rewear/pkg/logger"
	"rewear/pkg/models"
	"rewear/services/admin/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) GetUsers(limit, offset int) ([]*models.User, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockAdminRepository) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAdminRepository) SetUserStatus(id string, status models.UserStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockAdminRepository) GetListings(moderation models.ItemModeration, limit, offset int) ([]*models.Item, error) {
	args := m.Called(moderation, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

func (m *MockAdminRepository) GetListingByID(id string) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockAdminRepository) SetListingModeration(id string, moderation models.ItemModeration) error {
	args := m.Called(id, moderation)
	return args.Error(0)
}

func (m *MockAdminRepository) RemoveListing(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockAdminRepository) GetTransactions(limit, offset int) ([]*models.Transaction, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *MockAdminRepository) GrantPoints(userID string, amount int64, description string) (*models.Transaction, error) {
	args := m.Called(userID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func setupAdminTestRouter(repo *MockAdminRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAdminHandler(repo, nil, logger.New())

	r := gin.New()
	r.GET("/admin/users", handler.GetUsers)
	r.POST("/admin/users/:user_id/ban", handler.BanUser)
	r.POST("/admin/users/:user_id/unban", handler.UnbanUser)
	r.POST("/admin/users/:user_id/points", handler.GrantPoints)
	r.GET("/admin/listings", handler.GetListings)
	r.GET("/admin/listings/pending", handler.GetPendingListings)
	r.POST("/admin/listings/review/:item_id", handler.ReviewListing)
	r.POST("/admin/listings/reject/:item_id", handler.RejectListing)
	r.DELETE("/admin/listings/:item_id", handler.RemoveListing)
	r.GET("/admin/orders", handler.GetOrders)
	return r
}

func TestGetUsers_OK(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("GetUsers", 50, 0).Return([]*models.User{
		{ID: "user-1", Username: "alice", Status: models.UserStatusActive},
		{ID: "user-2", Username: "bob", Status: models.UserStatusBanned},
	}, nil)

	router := setupAdminTestRouter(mockRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/users", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])
	mockRepo.AssertExpectations(t)
}

func TestBanUser_OK(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("SetUserStatus", "user-2", models.UserStatusBanned).Return(nil)

	router := setupAdminTestRouter(mockRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/users/user-2/ban", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestBanUser_NotFound(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("SetUserStatus", "ghost", models.UserStatusBanned).Return(repository.ErrNotFound)

	router := setupAdminTestRouter(mockRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/users/ghost/ban", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnbanUser_OK(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("SetUserStatus", "user-2", models.UserStatusActive).Return(nil)

	router := setupAdminTestRouter(mockRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/users/user-2/unban", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestReviewListing_Approved(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("GetListingByID", "item-1").Return(&models.Item{ID: "item-1"}, nil)
	mockRepo.On("SetListingModeration", "item-1", models.ModerationApproved).Return(nil)

	router := setupAdminTestRouter(mockRepo)

	body, _ := json.Marshal(map[string]string{"status": "approved"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/listings/review/item-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestReviewListing_InvalidStatusRejected(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	router := setupAdminTestRouter(mockRepo)

	body, _ := json.Marshal(map[string]string{"status": "available"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/listings/review/item-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "SetListingModeration", mock.Anything, mock.Anything)
}

func TestReviewListing_NotFound(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("GetListingByID", "ghost").Return(nil, repository.ErrNotFound)

	router := setupAdminTestRouter(mockRepo)

	body, _ := json.Marshal(map[string]string{"status": "approved"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/listings/review/ghost", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPendingListings_OK(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("GetListings", models.ModerationPending, 50, 0).Return([]*models.Item{
		{ID: "item-1", Moderation: models.ModerationPending},
	}, nil)

	router := setupAdminTestRouter(mockRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/listings/pending", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestRemoveListing_ConflictWhenClaimed(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("GetListingByID", "item-1").Return(&models.Item{
		ID:           "item-1",
		Availability: models.ItemRedeemed,
	}, nil)
	mockRepo.On("RemoveListing", "item-1").Return(repository.ErrItemClaimed)

	router := setupAdminTestRouter(mockRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/listings/item-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRemoveListing_OK(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("GetListingByID", "item-1").Return(&models.Item{ID: "item-1"}, nil)
	mockRepo.On("RemoveListing", "item-1").Return(nil)

	router := setupAdminTestRouter(mockRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/listings/item-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestGrantPoints_OK(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("GrantPoints", "user-1", int64(200), "Welcome bonus").Return(&models.Transaction{
		ID:     "txn-1",
		UserID: "user-1",
		Type:   models.TransactionTypeEarn,
		Points: 200,
	}, nil)

	router := setupAdminTestRouter(mockRepo)

	body, _ := json.Marshal(map[string]interface{}{
		"points":      200,
		"description": "Welcome bonus",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/users/user-1/points", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestGrantPoints_NonPositiveRejected(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	router := setupAdminTestRouter(mockRepo)

	body, _ := json.Marshal(map[string]interface{}{"points": -50})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/users/user-1/points", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "GrantPoints", mock.Anything, mock.Anything, mock.Anything)
}

func TestGrantPoints_UnknownUser(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("GrantPoints", "ghost", int64(100), mock.Anything).Return(nil, repository.ErrNotFound)

	router := setupAdminTestRouter(mockRepo)

	body, _ := json.Marshal(map[string]interface{}{"points": 100})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/users/ghost/points", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrders_OK(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("GetTransactions", 50, 0).Return([]*models.Transaction{
		{ID: "txn-1", Type: models.TransactionTypeRedeem, Points: -300},
		{ID: "txn-2", Type: models.TransactionTypeEarn, Points: 300},
	}, nil)

	router := setupAdminTestRouter(mockRepo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/orders", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])
}
