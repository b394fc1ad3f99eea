package model

import "time"

// Answer is one recorded response within an attempt, keyed uniquely by
// (attempt, question). Saving again for the same question overwrites the row
// instead of appending a duplicate, which is what makes the client's debounced
// auto-save safe to retry.
type Answer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	AttemptID  uint      `json:"attempt_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question"`
	QuestionID uint      `json:"question_id" gorm:"not null;uniqueIndex:idx_answers_attempt_question"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	AnswerText string    `json:"answer_text" gorm:"type:text;not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null"`
	AnsweredAt time.Time `json:"answered_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
