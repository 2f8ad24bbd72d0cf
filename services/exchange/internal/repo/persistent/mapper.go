package persistent

import (
	"rewear/services/exchange/internal/entity"
	"rewear/services/exchange/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:            m.ID,
		Username:      m.Username,
		PointsBalance: m.PointsBalance,
		Status:        entity.UserStatus(m.Status),
		CreatedAt:     m.CreatedAt,
	}
}

func ToItemEntity(m *model.ItemModel) *entity.Item {
	if m == nil {
		return nil
	}

	return &entity.Item{
		ID:           m.ID,
		Title:        m.Title,
		PointsValue:  m.PointsValue,
		UploadedBy:   m.UploadedBy,
		Availability: entity.Availability(m.Availability),
		Moderation:   entity.Moderation(m.Moderation),
		SwappedTo:    m.SwappedTo,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToSwapEntity(m *model.SwapModel) *entity.SwapRequest {
	if m == nil {
		return nil
	}

	return &entity.SwapRequest{
		ID:          m.ID,
		RequesterID: m.RequesterID,
		OwnerID:     m.OwnerID,
		ItemID:      m.ItemID,
		Status:      entity.SwapStatus(m.Status),
		Message:     m.Message,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func ToSwapModel(e *entity.SwapRequest) *model.SwapModel {
	if e == nil {
		return nil
	}

	return &model.SwapModel{
		ID:          e.ID,
		RequesterID: e.RequesterID,
		OwnerID:     e.OwnerID,
		ItemID:      e.ItemID,
		Status:      string(e.Status),
		Message:     e.Message,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToTransactionEntity(m *model.TransactionModel) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		ItemID:      m.ItemID,
		Type:        entity.TransactionType(m.Type),
		Points:      m.Points,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func ToTransactionModel(e *entity.Transaction) *model.TransactionModel {
	if e == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:          e.ID,
		UserID:      e.UserID,
		ItemID:      e.ItemID,
		Type:        string(e.Type),
		Points:      e.Points,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}
