package usecase

import (
	"testing"

	"rewear/pkg/logger"
	"rewear/services/notification/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(notification *entity.Notification) error {
	args := m.Called(notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListForUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(userID, notificationID string) error {
	args := m.Called(userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(userID string) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestUseCase(repo *MockNotificationRepository) NotificationUseCase {
	return NewNotificationUseCase(repo, nil, nil, logger.New())
}

func TestHandleExchangeEvent_SwapRequestedNotifiesOwner(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	mockRepo.On("Create", mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == "owner-1" &&
			n.Type == entity.TypeSwapRequested &&
			n.SwapID == "swap-1" &&
			n.ItemID == "item-1"
	})).Return(nil)

	uc := newTestUseCase(mockRepo)

	err := uc.HandleExchangeEvent(map[string]interface{}{
		"type":         "swap_requested",
		"swap_id":      "swap-1",
		"item_id":      "item-1",
		"item_title":   "Wool Coat",
		"requester_id": "user-1",
		"owner_id":     "owner-1",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestHandleExchangeEvent_SwapResolvedNotifiesRequester(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	mockRepo.On("Create", mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == "user-1" &&
			n.Type == entity.TypeSwapResolved &&
			n.Title == "Swap Accepted"
	})).Return(nil)

	uc := newTestUseCase(mockRepo)

	err := uc.HandleExchangeEvent(map[string]interface{}{
		"type":         "swap_resolved",
		"swap_id":      "swap-1",
		"item_id":      "item-1",
		"requester_id": "user-1",
		"owner_id":     "owner-1",
		"status":       "accepted",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestHandleExchangeEvent_SwapDeclined(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	mockRepo.On("Create", mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == "user-1" && n.Title == "Swap Declined"
	})).Return(nil)

	uc := newTestUseCase(mockRepo)

	err := uc.HandleExchangeEvent(map[string]interface{}{
		"type":         "swap_resolved",
		"swap_id":      "swap-1",
		"requester_id": "user-1",
		"status":       "declined",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestHandleExchangeEvent_ItemRedeemedNotifiesOwner(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	mockRepo.On("Create", mock.MatchedBy(func(n *entity.Notification) bool {
		return n.UserID == "owner-1" &&
			n.Type == entity.TypeItemRedeemed &&
			n.Message == "Your item was redeemed for 300 points"
	})).Return(nil)

	uc := newTestUseCase(mockRepo)

	// JSON numbers decode as float64
	err := uc.HandleExchangeEvent(map[string]interface{}{
		"type":     "item_redeemed",
		"item_id":  "item-1",
		"buyer_id": "user-2",
		"owner_id": "owner-1",
		"points":   float64(300),
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestHandleExchangeEvent_UnknownTypeRejected(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	uc := newTestUseCase(mockRepo)

	err := uc.HandleExchangeEvent(map[string]interface{}{
		"type": "mystery_event",
	})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestHandleExchangeEvent_MissingFieldsRejected(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	uc := newTestUseCase(mockRepo)

	err := uc.HandleExchangeEvent(map[string]interface{}{
		"type":    "swap_requested",
		"swap_id": "swap-1",
		// no owner_id
	})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestGetNotifications_ReturnsUnreadCount(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	mockRepo.On("ListForUser", "user-1", 50, 0).Return([]*entity.Notification{
		{ID: "n-1", UserID: "user-1", Read: false},
		{ID: "n-2", UserID: "user-1", Read: true},
	}, nil)
	mockRepo.On("CountUnread", "user-1").Return(int64(1), nil)

	uc := newTestUseCase(mockRepo)

	notifications, unread, err := uc.GetNotifications("user-1", 50, 0)

	assert.NoError(t, err)
	assert.Len(t, notifications, 2)
	assert.Equal(t, int64(1), unread)
}

func TestMarkRead_OwnerScoped(t *testing.T) {
	mockRepo := new(MockNotificationRepository)
	mockRepo.On("MarkRead", "user-2", "n-1").Return(entity.ErrNotFound)

	uc := newTestUseCase(mockRepo)

	err := uc.MarkRead("user-2", "n-1")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
