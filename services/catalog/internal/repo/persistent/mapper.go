package persistent

import (
	"rewear/services/catalog/internal/entity"
	"rewear/services/catalog/internal/model"
)

func ToItemEntity(m *model.ItemModel) *entity.Item {
	if m == nil {
		return nil
	}

	return &entity.Item{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Category:      m.Category,
		Type:          m.Type,
		Size:          m.Size,
		Condition:     m.Condition,
		Tags:          []string(m.Tags),
		Images:        []string(m.Images),
		Brand:         m.Brand,
		OriginalPrice: m.OriginalPrice,
		AgeMonths:     m.AgeMonths,
		PointsValue:   m.PointsValue,
		UploadedBy:    m.UploadedBy,
		Availability:  entity.Availability(m.Availability),
		Moderation:    entity.Moderation(m.Moderation),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToItemModel(e *entity.Item) *model.ItemModel {
	if e == nil {
		return nil
	}

	return &model.ItemModel{
		ID:            e.ID,
		Title:         e.Title,
		Description:   e.Description,
		Category:      e.Category,
		Type:          e.Type,
		Size:          e.Size,
		Condition:     e.Condition,
		Tags:          e.Tags,
		Images:        e.Images,
		Brand:         e.Brand,
		OriginalPrice: e.OriginalPrice,
		AgeMonths:     e.AgeMonths,
		PointsValue:   e.PointsValue,
		UploadedBy:    e.UploadedBy,
		Availability:  string(e.Availability),
		Moderation:    string(e.Moderation),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
