package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"rewear/pkg/logger"
	"rewear/pkg/s3"
	"rewear/services/catalog/internal/entity"
	"rewear/services/catalog/internal/repo/persistent"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const itemCacheTTL = 24 * time.Hour

type CreateItemInput struct {
	Title         string
	Description   string
	Category      string
	Type          string
	Size          string
	Condition     string
	Tags          []string
	Brand         string
	OriginalPrice int64
	AgeMonths     int
}

type UpdateItemInput struct {
	Title         *string
	Description   *string
	Category      *string
	Type          *string
	Size          *string
	Condition     *string
	Tags          []string
	Brand         *string
	OriginalPrice *int64
	AgeMonths     *int
}

type ItemUseCase interface {
	CreateItem(userID string, input CreateItemInput, imageFiles []*multipart.FileHeader) (*entity.Item, error)
	GetItem(itemID string) (*entity.Item, error)
	ListItems(filter persistent.ItemFilter, limit, offset int) ([]*entity.Item, error)
	GetUserItems(userID string, limit, offset int) ([]*entity.Item, error)
	UpdateItem(itemID, userID string, input UpdateItemInput) (*entity.Item, error)
	WithdrawItem(itemID, userID string) error
}

type itemUseCase struct {
	itemRepo    persistent.ItemRepository
	s3Client    *s3.Client
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewItemUseCase(
	itemRepo persistent.ItemRepository,
	s3Client *s3.Client,
	redisClient *redis.Client,
	logger *logger.Logger,
) ItemUseCase {
	return &itemUseCase{
		itemRepo:    itemRepo,
		s3Client:    s3Client,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (uc *itemUseCase) CreateItem(userID string, input CreateItemInput, imageFiles []*multipart.FileHeader) (*entity.Item, error) {
	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("at least one image file is required")
	}
	if len(imageFiles) > 10 {
		return nil, fmt.Errorf("maximum 10 images allowed per item")
	}

	var imageURLs []string
	for _, file := range imageFiles {
		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}

		fileKey := fmt.Sprintf("items/%s/%s%s", userID, uuid.New().String(), getFileExtension(file.Filename))
		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		imageURL, err := uc.s3Client.UploadFile(fileKey, src, contentType)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload file to S3: %w", err)
		}

		imageURLs = append(imageURLs, imageURL)
	}

	// The point value is derived server-side from the listing attributes.
	pointsValue := EstimatePoints(input.Brand, input.Condition, input.AgeMonths, input.Category, input.OriginalPrice)

	item := &entity.Item{
		Title:         input.Title,
		Description:   input.Description,
		Category:      input.Category,
		Type:          input.Type,
		Size:          input.Size,
		Condition:     input.Condition,
		Tags:          input.Tags,
		Images:        imageURLs,
		Brand:         input.Brand,
		OriginalPrice: input.OriginalPrice,
		AgeMonths:     input.AgeMonths,
		PointsValue:   pointsValue,
		UploadedBy:    userID,
		Availability:  entity.ItemAvailable,
		Moderation:    entity.ModerationPending,
	}

	if err := uc.itemRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	uc.cacheItem(item)

	return item, nil
}

func (uc *itemUseCase) GetItem(itemID string) (*entity.Item, error) {
	if cached := uc.cachedItem(itemID); cached != nil {
		return cached, nil
	}

	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}

	uc.cacheItem(item)
	return item, nil
}

func (uc *itemUseCase) ListItems(filter persistent.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	// The public catalog shows only approved, still-available listings.
	filter.Availability = entity.ItemAvailable
	filter.Moderation = entity.ModerationApproved
	return uc.itemRepo.List(filter, limit, offset)
}

func (uc *itemUseCase) GetUserItems(userID string, limit, offset int) ([]*entity.Item, error) {
	return uc.itemRepo.List(persistent.ItemFilter{UploadedBy: userID}, limit, offset)
}

func (uc *itemUseCase) UpdateItem(itemID, userID string, input UpdateItemInput) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item.UploadedBy != userID {
		return nil, entity.ErrNotOwner
	}
	if !item.Editable() {
		return nil, entity.ErrItemLocked
	}

	if input.Title != nil {
		item.Title = *input.Title
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.Type != nil {
		item.Type = *input.Type
	}
	if input.Size != nil {
		item.Size = *input.Size
	}
	if input.Condition != nil {
		item.Condition = *input.Condition
	}
	if input.Tags != nil {
		item.Tags = input.Tags
	}
	if input.Brand != nil {
		item.Brand = *input.Brand
	}
	if input.OriginalPrice != nil {
		item.OriginalPrice = *input.OriginalPrice
	}
	if input.AgeMonths != nil {
		item.AgeMonths = *input.AgeMonths
	}

	// Pricing inputs may have changed; the stored value always matches
	// the current attributes.
	item.PointsValue = EstimatePoints(item.Brand, item.Condition, item.AgeMonths, item.Category, item.OriginalPrice)

	if err := uc.itemRepo.Update(item); err != nil {
		return nil, err
	}

	uc.invalidateItem(itemID)
	return item, nil
}

func (uc *itemUseCase) WithdrawItem(itemID, userID string) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item.UploadedBy != userID {
		return entity.ErrNotOwner
	}

	if err := uc.itemRepo.Withdraw(itemID); err != nil {
		return err
	}

	uc.invalidateItem(itemID)

	if uc.s3Client == nil {
		return nil
	}

	// Stored images are best-effort cleanup; the listing record stays.
	for _, imageURL := range item.Images {
		if key := uc.s3Client.KeyFromURL(imageURL); key != "" {
			if err := uc.s3Client.DeleteFile(key); err != nil {
				uc.logger.Warn("Failed to delete item image from S3: %v", err)
			}
		}
	}

	return nil
}

func (uc *itemUseCase) cacheItem(item *entity.Item) {
	if uc.redisClient == nil {
		return
	}

	data, err := json.Marshal(item)
	if err != nil {
		return
	}

	ctx := context.Background()
	uc.redisClient.Set(ctx, itemCacheKey(item.ID), data, itemCacheTTL)
}

func (uc *itemUseCase) cachedItem(itemID string) *entity.Item {
	if uc.redisClient == nil {
		return nil
	}

	ctx := context.Background()
	data, err := uc.redisClient.Get(ctx, itemCacheKey(itemID)).Bytes()
	if err != nil {
		return nil
	}

	var item entity.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil
	}
	return &item
}

func (uc *itemUseCase) invalidateItem(itemID string) {
	if uc.redisClient == nil {
		return
	}
	uc.redisClient.Del(context.Background(), itemCacheKey(itemID))
}

func itemCacheKey(itemID string) string {
	return fmt.Sprintf("item:%s", itemID)
}

func getFileExtension(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
