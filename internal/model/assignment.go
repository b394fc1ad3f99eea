package model

import "time"

// Assignment binds a test to a student. The composite unique index backs the
// "a student is never assigned the same test twice" invariant; Assign resolves
// a duplicate into the existing row. Unassignment is a hard delete so the pair
// can be assigned again later.
type Assignment struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	TestID    uint       `json:"test_id" gorm:"not null;uniqueIndex:idx_assignments_test_student"`
	Test      Test       `json:"test,omitempty" gorm:"foreignKey:TestID"`
	StudentID uint       `json:"student_id" gorm:"not null;uniqueIndex:idx_assignments_test_student"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
