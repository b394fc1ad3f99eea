package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// WordResponseDTO is a word as shown to the teacher.
type WordResponseDTO struct {
	ID           uint   `json:"id"`
	Word         string `json:"word"`
	Definition   string `json:"definition"`
	OrderInSheet int    `json:"order_in_sheet"`
}

// SheetResponseDTO is a sheet with its full word list.
type SheetResponseDTO struct {
	ID             uint              `json:"id"`
	Title          string            `json:"title"`
	SourceImageURL *string           `json:"source_image_url,omitempty"`
	Words          []WordResponseDTO `json:"words,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// SheetSummaryDTO is a sheet listing row.
type SheetSummaryDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// QuestionResponseDTO is the student-facing view of a question. It never
// carries the correct answer; correctness is resolved server-side at save and
// scoring time.
type QuestionResponseDTO struct {
	ID          uint     `json:"id"`
	TestID      uint     `json:"test_id"`
	Prompt      string   `json:"prompt"`
	Type        string   `json:"type"`
	Options     []string `json:"options,omitempty"`
	OrderInTest int      `json:"order_in_test"`
}

// TestResponseDTO is a full test with its ordered questions.
type TestResponseDTO struct {
	ID        uint                  `json:"id"`
	Title     string                `json:"title"`
	SheetID   uint                  `json:"sheet_id"`
	Variant   int                   `json:"variant"`
	Questions []QuestionResponseDTO `json:"questions,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

// TestSummaryDTO is a catalog listing row.
type TestSummaryDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	SheetID       uint      `json:"sheet_id"`
	Variant       int       `json:"variant"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// AssignmentResponseDTO is one test-to-student binding.
type AssignmentResponseDTO struct {
	ID        uint       `json:"id"`
	TestID    uint       `json:"test_id"`
	TestTitle string     `json:"test_title,omitempty"`
	StudentID uint       `json:"student_id"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// AnswerResponseDTO is one recorded answer within an attempt snapshot.
// IsCorrect is populated only once the attempt is submitted; exposing it
// mid-attempt would let a student guess-and-check through the auto-save
// endpoint.
type AnswerResponseDTO struct {
	QuestionID uint      `json:"question_id"`
	AnswerText string    `json:"answer_text"`
	IsCorrect  *bool     `json:"is_correct,omitempty"`
	AnsweredAt time.Time `json:"answered_at"`
}

// AttemptDetailDTO is the full attempt snapshot the client resumes from:
// every recorded answer plus the last navigation position, exactly as last
// saved.
type AttemptDetailDTO struct {
	ID                   uint                `json:"id"`
	TestID               uint                `json:"test_id"`
	TestTitle            string              `json:"test_title,omitempty"`
	StudentID            uint                `json:"student_id"`
	Status               string              `json:"status"`
	StartedAt            time.Time           `json:"started_at"`
	SubmittedAt          *time.Time          `json:"submitted_at,omitempty"`
	CurrentQuestionIndex int                 `json:"current_question_index"`
	Score                *int                `json:"score,omitempty"`
	Answers              []AnswerResponseDTO `json:"answers,omitempty"`
}

// AttemptSummaryDTO is a history listing row.
type AttemptSummaryDTO struct {
	ID          uint       `json:"id"`
	TestID      uint       `json:"test_id"`
	TestTitle   string     `json:"test_title,omitempty"`
	StudentID   uint       `json:"student_id"`
	Status      string     `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	Score       *int       `json:"score,omitempty"`
}
