package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID            string    `gorm:"type:uuid;primary_key"`
	Email         string    `gorm:"uniqueIndex;not null"`
	Username      string    `gorm:"uniqueIndex;not null"`
	Password      string    `gorm:"not null"`
	ProfilePhoto  string
	Location      string
	PointsBalance int64     `gorm:"not null;default:0"`
	Status        string    `gorm:"type:varchar(20);default:'active'"`
	Role          string    `gorm:"type:varchar(20);default:'customer'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
