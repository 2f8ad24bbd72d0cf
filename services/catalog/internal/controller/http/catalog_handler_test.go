package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"rewear/pkg/logger"
	"rewear/services/catalog/internal/entity"
	"rewear/services/catalog/internal/repo/persistent"
	"rewear/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockItemUseCase struct {
	mock.Mock
}

func (m *MockItemUseCase) CreateItem(userID string, input usecase.CreateItemInput, imageFiles []*multipart.FileHeader) (*entity.Item, error) {
	args := m.Called(userID, input, imageFiles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Item), args.Error(1)
}

func (m *MockItemUseCase) GetItem(itemID string) (*entity.Item, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Item), args.Error(1)
}

func (m *MockItemUseCase) ListItems(filter persistent.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	args := m.Called(filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Item), args.Error(1)
}

func (m *MockItemUseCase) GetUserItems(userID string, limit, offset int) ([]*entity.Item, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Item), args.Error(1)
}

func (m *MockItemUseCase) UpdateItem(itemID, userID string, input usecase.UpdateItemInput) (*entity.Item, error) {
	args := m.Called(itemID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Item), args.Error(1)
}

func (m *MockItemUseCase) WithdrawItem(itemID, userID string) error {
	args := m.Called(itemID, userID)
	return args.Error(0)
}

func setupCatalogTestRouter(uc *MockItemUseCase, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCatalogHandler(uc, logger.New())

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	r.POST("/items", handler.CreateItem)
	r.GET("/items", handler.ListItems)
	r.GET("/items/mine", handler.GetMyItems)
	r.GET("/items/:id", handler.GetItem)
	r.PUT("/items/:id", handler.UpdateItem)
	r.DELETE("/items/:id", handler.WithdrawItem)
	return r
}

func TestListItems_PassesFilters(t *testing.T) {
	mockUC := new(MockItemUseCase)
	mockUC.On("ListItems", persistent.ItemFilter{
		Category:  "jacket",
		Size:      "M",
		Condition: "good",
		Search:    "denim",
	}, 20, 0).Return([]*entity.Item{
		{ID: "item-1", Title: "Denim Jacket"},
	}, nil)

	router := setupCatalogTestRouter(mockUC, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/items?category=jacket&size=M&condition=good&search=denim", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(1), response["count"])
	mockUC.AssertExpectations(t)
}

func TestGetItem_OK(t *testing.T) {
	mockUC := new(MockItemUseCase)
	mockUC.On("GetItem", "item-1").Return(&entity.Item{
		ID:          "item-1",
		Title:       "Wool Sweater",
		PointsValue: 195,
	}, nil)

	router := setupCatalogTestRouter(mockUC, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/items/item-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Wool Sweater", response["title"])
}

func TestGetItem_NotFound(t *testing.T) {
	mockUC := new(MockItemUseCase)
	mockUC.On("GetItem", "missing").Return(nil, entity.ErrNotFound)

	router := setupCatalogTestRouter(mockUC, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/items/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateItem_RequiresImages(t *testing.T) {
	mockUC := new(MockItemUseCase)
	router := setupCatalogTestRouter(mockUC, "user-1")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("title", "Blue Jeans")
	writer.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/items", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUC.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateItem_OK(t *testing.T) {
	mockUC := new(MockItemUseCase)
	mockUC.On("CreateItem", "user-1", mock.MatchedBy(func(in usecase.CreateItemInput) bool {
		return in.Title == "Blue Jeans" && in.Brand == "Levi" && len(in.Tags) == 2
	}), mock.Anything).Return(&entity.Item{
		ID:          "item-1",
		Title:       "Blue Jeans",
		PointsValue: 330,
		Moderation:  entity.ModerationPending,
	}, nil)

	router := setupCatalogTestRouter(mockUC, "user-1")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("title", "Blue Jeans")
	writer.WriteField("brand", "Levi")
	writer.WriteField("tags", "denim, casual")
	part, _ := writer.CreateFormFile("images", "front.jpg")
	part.Write([]byte("fake image bytes"))
	writer.Close()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/items", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "pending", response["moderation"])
	mockUC.AssertExpectations(t)
}

func TestUpdateItem_ForbiddenForNonOwner(t *testing.T) {
	mockUC := new(MockItemUseCase)
	mockUC.On("UpdateItem", "item-1", "stranger", mock.Anything).Return(nil, entity.ErrNotOwner)

	router := setupCatalogTestRouter(mockUC, "stranger")

	body, _ := json.Marshal(map[string]string{"title": "Stolen"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/items/item-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestWithdrawItem_ConflictOnceClaimed(t *testing.T) {
	mockUC := new(MockItemUseCase)
	mockUC.On("WithdrawItem", "item-1", "owner-1").Return(entity.ErrItemLocked)

	router := setupCatalogTestRouter(mockUC, "owner-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/items/item-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWithdrawItem_OK(t *testing.T) {
	mockUC := new(MockItemUseCase)
	mockUC.On("WithdrawItem", "item-1", "owner-1").Return(nil)

	router := setupCatalogTestRouter(mockUC, "owner-1")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/items/item-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUC.AssertExpectations(t)
}
