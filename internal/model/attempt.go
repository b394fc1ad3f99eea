package model

import (
	"time"

	"gorm.io/gorm"
)

// Attempt statuses. An attempt is created in_progress and moves to submitted
// exactly once; there is no other transition.
const (
	AttemptStatusInProgress = "in_progress"
	AttemptStatusSubmitted  = "submitted"
)

// Attempt is one student's pass through one test. The only mutable entity in
// the core: answers are upserted and CurrentQuestionIndex tracks navigation
// until Submit freezes the row. At most one in_progress attempt exists per
// (test, student) pair; starting again resumes it.
type Attempt struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	TestID               uint           `json:"test_id" gorm:"not null;index"`
	Test                 Test           `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StudentID            uint           `json:"student_id" gorm:"not null;index"`
	Status               string         `json:"status" gorm:"not null;default:'in_progress';index"`
	StartedAt            time.Time      `json:"started_at"`
	SubmittedAt          *time.Time     `json:"submitted_at,omitempty"`
	CurrentQuestionIndex int            `json:"current_question_index" gorm:"not null;default:0"`
	Score                *int           `json:"score,omitempty"` // 0-100, set at submission
	Answers              []Answer       `json:"answers,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
