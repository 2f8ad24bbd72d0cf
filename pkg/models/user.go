package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive UserStatus = "active"
	UserStatusBanned UserStatus = "banned"
)

type User struct {
	ID            string     `gorm:"type:uuid;primary_key" json:"id"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Username      string     `gorm:"uniqueIndex;not null" json:"username"`
	Password      string     `gorm:"not null" json:"-"`
	ProfilePhoto  string     `json:"profile_photo,omitempty"`
	Location      string     `json:"location,omitempty"`
	PointsBalance int64      `gorm:"not null;default:0" json:"points_balance"`
	Status        UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	Role          UserRole   `gorm:"type:varchar(20);default:'customer'" json:"role"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
