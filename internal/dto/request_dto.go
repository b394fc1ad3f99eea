package dto

import "time"

// WordCreateDTO is a single word/definition pair supplied directly by the
// teacher when no sheet image is extracted.
type WordCreateDTO struct {
	Word       string `json:"word" binding:"required"`
	Definition string `json:"definition" binding:"required"`
}

// SheetCreateDTO creates a vocabulary sheet. Either an image URL to extract
// from, or an explicit word list, must be provided.
type SheetCreateDTO struct {
	Title    string          `json:"title" binding:"required"`
	ImageURL *string         `json:"image_url"`
	Words    []WordCreateDTO `json:"words" binding:"omitempty,dive"`
}

// TestGenerateDTO requests N independently shuffled test variants over one
// sheet's corpus.
type TestGenerateDTO struct {
	VariantCount int `json:"variant_count" binding:"required,min=1,max=10"`
}

// AssignmentCreateDTO binds a test to a student. DueDate is informational
// only; no lockout is enforced on a passed due date.
type AssignmentCreateDTO struct {
	StudentID uint       `json:"student_id" binding:"required"`
	DueDate   *time.Time `json:"due_date"`
}

// AttemptStartDTO starts (or resumes) a student's attempt on a test.
type AttemptStartDTO struct {
	StudentID uint `json:"student_id" binding:"required"`
}

// AnswerSaveDTO records one answer. QuestionIndex, when present, also moves
// the student's navigation position in the same call; this is the target of
// the client's debounced auto-save and tolerates rapid repeated calls.
type AnswerSaveDTO struct {
	QuestionID    uint   `json:"question_id" binding:"required"`
	Answer        string `json:"answer" binding:"required"`
	QuestionIndex *int   `json:"question_index" binding:"omitempty,min=0"`
}

// PositionUpdateDTO records the question the student is currently viewing so
// a later resume lands on the same question.
type PositionUpdateDTO struct {
	QuestionIndex *int `json:"question_index" binding:"required,min=0"`
}
