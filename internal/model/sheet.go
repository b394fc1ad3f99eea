package model

import (
	"time"

	"gorm.io/gorm"
)

// Sheet is one uploaded vocabulary sheet. Its words are the corpus every
// generated test variant is built from.
type Sheet struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Title          string         `json:"title" gorm:"not null"`
	SourceImageURL *string        `json:"source_image_url,omitempty"`
	Words          []Word         `json:"words,omitempty" gorm:"foreignKey:SheetID"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
