package models

import (
	"time"
)

const (
	RoleOwner  = "owner"
	RoleViewer = "viewer"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"not null;default:owner"` // owner or viewer
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
