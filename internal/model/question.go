package model

import (
	"time"

	"gorm.io/gorm"
)

// Question types. The synthesizer cycles through these per word.
const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeFillInBlank    = "fill_in_blank"
	QuestionTypeSpelling       = "spelling"
)

// Question belongs to exactly one test and is never mutated after generation.
// Options is populated only for multiple_choice and always contains
// CorrectAnswer; that invariant is enforced at synthesis time.
type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	TestID        uint           `json:"test_id" gorm:"not null;index"`
	WordID        uint           `json:"word_id" gorm:"not null;index"`
	Prompt        string         `json:"prompt" gorm:"type:text;not null"`
	Type          string         `json:"type" gorm:"not null"` // "multiple_choice", "fill_in_blank", "spelling"
	CorrectAnswer string         `json:"correct_answer" gorm:"type:text;not null"`
	Options       []string       `json:"options,omitempty" gorm:"serializer:json"`
	OrderInTest   int            `json:"order_in_test" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
