package model

import (
	"time"

	"gorm.io/gorm"
)

// Word is a single word/definition pair on a sheet. Immutable once created;
// OrderInSheet drives deterministic question generation.
type Word struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	SheetID      uint           `json:"sheet_id" gorm:"not null;index"`
	Word         string         `json:"word" gorm:"not null"`
	Definition   string         `json:"definition" gorm:"type:text;not null"`
	OrderInSheet int            `json:"order_in_sheet" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
