package persistent

import (
	"rewear/services/auth/internal/entity"
	"rewear/services/auth/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:            m.ID,
		Email:         m.Email,
		Username:      m.Username,
		Password:      m.Password,
		ProfilePhoto:  m.ProfilePhoto,
		Location:      m.Location,
		PointsBalance: m.PointsBalance,
		Status:        entity.Status(m.Status),
		Role:          entity.Role(m.Role),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:            e.ID,
		Email:         e.Email,
		Username:      e.Username,
		Password:      e.Password,
		ProfilePhoto:  e.ProfilePhoto,
		Location:      e.Location,
		PointsBalance: e.PointsBalance,
		Status:        string(e.Status),
		Role:          string(e.Role),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
