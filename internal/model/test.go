package model

import (
	"time"

	"gorm.io/gorm"
)

// Test is one generated variant over a sheet's corpus. Tests are immutable
// once created so every assigned student answers the same fixed content.
type Test struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `json:"title" gorm:"not null;uniqueIndex"` // "Unit 4 Vocabulary - Variant 2"
	SheetID   uint           `json:"sheet_id" gorm:"not null;index"`
	Variant   int            `json:"variant" gorm:"not null"`
	Questions []Question     `json:"questions,omitempty" gorm:"foreignKey:TestID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
