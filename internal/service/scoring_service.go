package service

import (
	"math"

	"github.com/ltmanh/vocaprep/internal/model"
)

// ScoreResult is the outcome of grading one attempt against its test.
type ScoreResult struct {
	Percentage   int `json:"percentage"`
	CorrectCount int `json:"correct_count"`
	TotalCount   int `json:"total_count"`
}

// ScoringService grades a set of recorded answers against a test's questions.
// Pure and idempotent: scoring the same inputs twice yields the same result,
// and nothing is mutated.
type ScoringService interface {
	Score(questions []model.Question, answers []model.Answer) ScoreResult
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Score counts every question of the test; unanswered questions count as
// incorrect. Correctness is recomputed from the answer text against the
// stored correct answer rather than trusting the cached IsCorrect flag, and
// compares by string equality, never by option position. Rounding is
// standard half-up: 2 of 3 scores 67.
func (s *scoringService) Score(questions []model.Question, answers []model.Answer) ScoreResult {
	byQuestion := make(map[uint]model.Answer, len(answers))
	for _, answer := range answers {
		byQuestion[answer.QuestionID] = answer
	}

	correct := 0
	for _, question := range questions {
		if answer, ok := byQuestion[question.ID]; ok && answer.AnswerText == question.CorrectAnswer {
			correct++
		}
	}

	result := ScoreResult{CorrectCount: correct, TotalCount: len(questions)}
	if result.TotalCount > 0 {
		result.Percentage = int(math.Round(float64(correct) / float64(result.TotalCount) * 100))
	}
	return result
}
