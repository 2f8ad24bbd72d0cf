package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"rewear/pkg/logger"
	"rewear/pkg/queue"
	"rewear/services/notification/internal/entity"
	"rewear/services/notification/internal/repo/persistent"

	"github.com/redis/go-redis/v9"
)

type NotificationUseCase interface {
	GetNotifications(userID string, limit, offset int) ([]*entity.Notification, int64, error)
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) (int64, error)

	// HandleExchangeEvent turns a settlement event from the queue into
	// stored notifications for the affected users.
	HandleExchangeEvent(event map[string]interface{}) error

	QueueLength() (int64, error)
}

type notificationUseCase struct {
	notificationRepo persistent.NotificationRepository
	redisClient      *redis.Client
	queueClient      *queue.Client
	logger           *logger.Logger
}

func NewNotificationUseCase(notificationRepo persistent.NotificationRepository, redisClient *redis.Client, queueClient *queue.Client, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		notificationRepo: notificationRepo,
		redisClient:      redisClient,
		queueClient:      queueClient,
		logger:           logger,
	}
}

func (uc *notificationUseCase) GetNotifications(userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	notifications, err := uc.notificationRepo.ListForUser(userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	unread, err := uc.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return notifications, unread, nil
}

func (uc *notificationUseCase) MarkRead(userID, notificationID string) error {
	return uc.notificationRepo.MarkRead(userID, notificationID)
}

func (uc *notificationUseCase) MarkAllRead(userID string) (int64, error) {
	return uc.notificationRepo.MarkAllRead(userID)
}

func (uc *notificationUseCase) HandleExchangeEvent(event map[string]interface{}) error {
	eventType, _ := event["type"].(string)

	switch eventType {
	case queue.EventSwapRequested:
		return uc.handleSwapRequested(event)
	case queue.EventSwapResolved:
		return uc.handleSwapResolved(event)
	case queue.EventItemRedeemed:
		return uc.handleItemRedeemed(event)
	default:
		uc.logger.Error("[NOTIFICATION HANDLER] Unknown event type: %s, event=%+v", eventType, event)
		return fmt.Errorf("unknown event type: %s", eventType)
	}
}

func (uc *notificationUseCase) handleSwapRequested(event map[string]interface{}) error {
	swapID, _ := event["swap_id"].(string)
	itemID, _ := event["item_id"].(string)
	itemTitle, _ := event["item_title"].(string)
	ownerID, _ := event["owner_id"].(string)

	if swapID == "" || ownerID == "" {
		uc.logger.Error("[NOTIFICATION HANDLER] Invalid swap_requested event: %+v", event)
		return fmt.Errorf("invalid event: missing swap_id or owner_id")
	}

	if itemTitle == "" {
		itemTitle = "your item"
	}

	return uc.deliver(&entity.Notification{
		UserID:  ownerID,
		Type:    entity.TypeSwapRequested,
		Title:   "New Swap Request",
		Message: fmt.Sprintf("Someone wants to swap for %s", itemTitle),
		SwapID:  swapID,
		ItemID:  itemID,
	})
}

func (uc *notificationUseCase) handleSwapResolved(event map[string]interface{}) error {
	swapID, _ := event["swap_id"].(string)
	itemID, _ := event["item_id"].(string)
	requesterID, _ := event["requester_id"].(string)
	status, _ := event["status"].(string)

	if swapID == "" || requesterID == "" {
		uc.logger.Error("[NOTIFICATION HANDLER] Invalid swap_resolved event: %+v", event)
		return fmt.Errorf("invalid event: missing swap_id or requester_id")
	}

	title := "Swap Declined"
	message := "The owner declined your swap request"
	if status == "accepted" {
		title = "Swap Accepted"
		message = "The owner accepted your swap request"
	}

	return uc.deliver(&entity.Notification{
		UserID:  requesterID,
		Type:    entity.TypeSwapResolved,
		Title:   title,
		Message: message,
		SwapID:  swapID,
		ItemID:  itemID,
	})
}

func (uc *notificationUseCase) handleItemRedeemed(event map[string]interface{}) error {
	itemID, _ := event["item_id"].(string)
	ownerID, _ := event["owner_id"].(string)
	points, _ := event["points"].(float64)

	if itemID == "" || ownerID == "" {
		uc.logger.Error("[NOTIFICATION HANDLER] Invalid item_redeemed event: %+v", event)
		return fmt.Errorf("invalid event: missing item_id or owner_id")
	}

	return uc.deliver(&entity.Notification{
		UserID:  ownerID,
		Type:    entity.TypeItemRedeemed,
		Title:   "Item Redeemed",
		Message: fmt.Sprintf("Your item was redeemed for %d points", int64(points)),
		ItemID:  itemID,
	})
}

// deliver stores the notification and pushes it on the user's pub/sub
// channel for live WebSocket delivery. Storage failure is an error the
// consumer retries; a pub/sub failure only loses the live push.
func (uc *notificationUseCase) deliver(notification *entity.Notification) error {
	if err := uc.notificationRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	if uc.redisClient == nil {
		return nil
	}

	notificationJSON, err := json.Marshal(notification)
	if err != nil {
		uc.logger.Error("Failed to marshal notification: %v", err)
		return nil
	}

	ctx := context.Background()
	channel := fmt.Sprintf("notifications:%s", notification.UserID)
	if err := uc.redisClient.Publish(ctx, channel, notificationJSON).Err(); err != nil {
		uc.logger.Error("Failed to publish notification to channel %s: %v", channel, err)
	}

	return nil
}

func (uc *notificationUseCase) QueueLength() (int64, error) {
	if uc.queueClient == nil {
		return 0, fmt.Errorf("queue client is not available")
	}
	length, err := uc.queueClient.GetQueueLength()
	return int64(length), err
}
