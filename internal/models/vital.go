package models

import (
	"time"
)

type Vital struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"userId" gorm:"index;not null"`
	Type       string    `json:"type" gorm:"not null"` // 'Blood Pressure', 'Heart Rate', 'Blood Sugar', ...
	Value      string    `json:"value" gorm:"not null"` // opaque text, composites like "120/80" allowed
	Unit       string    `json:"unit" gorm:"not null"`
	ObservedAt time.Time `json:"observedAt" gorm:"index;not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
