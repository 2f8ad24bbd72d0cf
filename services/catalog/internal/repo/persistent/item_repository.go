package persistent

import (
	"errors"
	"fmt"

	"rewear/services/catalog/internal/entity"
	"rewear/services/catalog/internal/model"

	"gorm.io/gorm"
)

// ItemFilter narrows List results. Zero values mean "no filter".
type ItemFilter struct {
	Category     string
	Size         string
	Condition    string
	Search       string
	UploadedBy   string
	Availability entity.Availability
	Moderation   entity.Moderation
}

type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	List(filter ItemFilter, limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error

	// Withdraw flips an available item to removed. The status check and
	// the write are one statement so a listing cannot be withdrawn after
	// a settlement claimed it.
	Withdraw(id string) error
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *entity.Item) error {
	itemModel := ToItemModel(item)
	if err := r.db.Create(itemModel).Error; err != nil {
		return storageErr(err)
	}
	*item = *ToItemEntity(itemModel)
	return nil
}

func (r *itemRepository) GetByID(id string) (*entity.Item, error) {
	var itemModel model.ItemModel
	if err := r.db.Where("id = ?", id).First(&itemModel).Error; err != nil {
		return nil, storageErr(err)
	}
	return ToItemEntity(&itemModel), nil
}

func (r *itemRepository) List(filter ItemFilter, limit, offset int) ([]*entity.Item, error) {
	var itemModels []model.ItemModel
	query := r.db.Order("created_at DESC")

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Size != "" {
		query = query.Where("size = ?", filter.Size)
	}
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.UploadedBy != "" {
		query = query.Where("uploaded_by = ?", filter.UploadedBy)
	}
	if filter.Availability != "" {
		query = query.Where("availability = ?", string(filter.Availability))
	}
	if filter.Moderation != "" {
		query = query.Where("moderation = ?", string(filter.Moderation))
	}

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&itemModels).Error; err != nil {
		return nil, storageErr(err)
	}

	items := make([]*entity.Item, len(itemModels))
	for i := range itemModels {
		items[i] = ToItemEntity(&itemModels[i])
	}
	return items, nil
}

func (r *itemRepository) Update(item *entity.Item) error {
	itemModel := ToItemModel(item)
	res := r.db.Model(&model.ItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"title":          itemModel.Title,
			"description":    itemModel.Description,
			"category":       itemModel.Category,
			"type":           itemModel.Type,
			"size":           itemModel.Size,
			"condition":      itemModel.Condition,
			"tags":           itemModel.Tags,
			"brand":          itemModel.Brand,
			"original_price": itemModel.OriginalPrice,
			"age_months":     itemModel.AgeMonths,
			"points_value":   itemModel.PointsValue,
		})
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *itemRepository) Withdraw(id string) error {
	res := r.db.Model(&model.ItemModel{}).
		Where("id = ? AND availability = ?", id, string(entity.ItemAvailable)).
		Update("availability", string(entity.ItemRemoved))
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return entity.ErrItemLocked
	}
	return nil
}

func storageErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.ErrNotFound
	}
	return fmt.Errorf("%w: %v", entity.ErrStorageUnavailable, err)
}
