package models

import (
	"time"
)

// Share grants one user read access to one report. The target is captured
// by username text, not a user id: a share keeps pointing at whoever holds
// that username when the listing is resolved.
type Share struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	ReportID           uint      `json:"reportId" gorm:"index;not null"`
	SharedByUserID     uint      `json:"sharedByUserId" gorm:"not null"`
	SharedWithUsername string    `json:"sharedWithUsername" gorm:"index;not null"`
	CreatedAt          time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
