package entity

import "time"

type UserStatus string

const (
	UserActive UserStatus = "active"
	UserBanned UserStatus = "banned"
)

type User struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	PointsBalance int64      `json:"points_balance"`
	Status        UserStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}
