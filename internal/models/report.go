package models

import (
	"time"
)

type Report struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"index;not null"` // owning user, immutable
	Title      string    `json:"title" gorm:"not null"`
	Type       string    `json:"type" gorm:"not null"` // 'Blood Test', 'X-Ray', 'MRI', ...
	ReportDate string    `json:"reportDate" gorm:"not null"` // ISO date, e.g. 2024-01-10
	FilePath   string    `json:"filePath" gorm:"not null"` // opaque reference, bytes live outside the DB
	Summary    *string   `json:"summary"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
