package service

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/ltmanh/vocaprep/internal/model"
	"github.com/ltmanh/vocaprep/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService owns the attempt lifecycle: start/resume, incremental answer
// recording, navigation tracking, and submission. Start, SaveAnswer and
// Submit are all safe to retry; callers MAY re-issue any of them after a
// transport failure.
type AttemptService interface {
	Start(testID, studentID uint) (*dto.AttemptDetailDTO, error)
	SaveAnswer(attemptID uint, req dto.AnswerSaveDTO) (*dto.AttemptDetailDTO, error)
	SetCurrentQuestion(attemptID uint, index int) (*dto.AttemptDetailDTO, error)
	Submit(attemptID uint) (*dto.AttemptDetailDTO, error)
	GetAttempt(attemptID uint) (*dto.AttemptDetailDTO, error)
	GetHistory(studentID uint) ([]dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	testRepo     repository.TestRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	answerRepo   repository.AnswerRepository
	scoring      ScoringService
	db           *gorm.DB

	// Advisory locks keyed by (test, student), serializing check-then-create
	// on Start and check-then-finalize on Submit.
	pairLocks sync.Map
}

func NewAttemptService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	answerRepo repository.AnswerRepository,
	scoring ScoringService,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		testRepo:     testRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		answerRepo:   answerRepo,
		scoring:      scoring,
		db:           db,
	}
}

func (s *attemptService) lockPair(testID, studentID uint) *sync.Mutex {
	key := fmt.Sprintf("%d:%d", testID, studentID)
	mu, _ := s.pairLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Start creates a fresh in-progress attempt, or resumes the existing one for
// the pair unchanged. Idempotent: calling it twice without an intervening
// submit returns the same attempt and creates no second row.
func (s *attemptService) Start(testID, studentID uint) (*dto.AttemptDetailDTO, error) {
	if _, err := s.testRepo.FindByID(testID); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Start: test not found")
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}

	mu := s.lockPair(testID, studentID)
	mu.Lock()
	defer mu.Unlock()

	existing, err := s.attemptRepo.FindInProgress(testID, studentID)
	if err != nil {
		return nil, fmt.Errorf("error looking up open attempt: %w", err)
	}
	if existing != nil {
		log.Info().Uint("attemptID", existing.ID).Uint("testID", testID).Uint("studentID", studentID).
			Msg("Start: resuming existing in-progress attempt")
		return s.attemptDetail(existing.ID)
	}

	attempt := model.Attempt{
		TestID:               testID,
		StudentID:            studentID,
		Status:               model.AttemptStatusInProgress,
		StartedAt:            time.Now(),
		CurrentQuestionIndex: 0,
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("Start: failed to create attempt")
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}
	return s.attemptDetail(attempt.ID)
}

// SaveAnswer upserts the answer for one question of an in-progress attempt
// and optionally moves the navigation position in the same call. Recording a
// revised value for an already answered question overwrites the prior row.
// Runs under the pair's advisory lock so a submit cannot interleave between
// the status check and the write.
func (s *attemptService) SaveAnswer(attemptID uint, req dto.AnswerSaveDTO) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}

	mu := s.lockPair(attempt.TestID, attempt.StudentID)
	mu.Lock()
	defer mu.Unlock()

	// Re-read under the lock: a concurrent submit may have frozen the attempt
	// between the first load and lock acquisition.
	attempt, err = s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}
	if attempt.Status == model.AttemptStatusSubmitted {
		return nil, fmt.Errorf("cannot record answer on attempt %d: %w", attemptID, ErrAttemptClosed)
	}

	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("question not found with ID %d: %w", req.QuestionID, err)
	}
	if question.TestID != attempt.TestID {
		return nil, fmt.Errorf("question %d on attempt %d: %w", req.QuestionID, attemptID, ErrQuestionNotInTest)
	}
	// Validate the requested position before writing anything, so a bad index
	// leaves no partial state behind.
	if req.QuestionIndex != nil {
		if err := s.checkCursorBounds(attempt.TestID, *req.QuestionIndex); err != nil {
			return nil, err
		}
	}

	answer := model.Answer{
		AttemptID:  attempt.ID,
		QuestionID: question.ID,
		AnswerText: req.Answer,
		IsCorrect:  req.Answer == question.CorrectAnswer,
		AnsweredAt: time.Now(),
	}
	if err := s.answerRepo.Upsert(&answer); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Uint("questionID", question.ID).Msg("SaveAnswer: upsert failed")
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	if req.QuestionIndex != nil {
		attempt.CurrentQuestionIndex = *req.QuestionIndex
		if err := s.attemptRepo.Update(attempt); err != nil {
			return nil, fmt.Errorf("failed to save question position: %w", err)
		}
	}
	return s.attemptDetail(attempt.ID)
}

// SetCurrentQuestion records the navigation position so a later resume lands
// on the same question.
func (s *attemptService) SetCurrentQuestion(attemptID uint, index int) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}

	mu := s.lockPair(attempt.TestID, attempt.StudentID)
	mu.Lock()
	defer mu.Unlock()

	attempt, err = s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}
	if attempt.Status == model.AttemptStatusSubmitted {
		return nil, fmt.Errorf("cannot move position on attempt %d: %w", attemptID, ErrAttemptClosed)
	}
	if err := s.moveCursor(attempt, index); err != nil {
		return nil, err
	}
	return s.attemptDetail(attempt.ID)
}

func (s *attemptService) checkCursorBounds(testID uint, index int) error {
	questions, err := s.questionRepo.FindByTestID(testID)
	if err != nil {
		return fmt.Errorf("failed to load questions for test %d: %w", testID, err)
	}
	if index < 0 || index >= len(questions) {
		return fmt.Errorf("index %d of %d questions: %w", index, len(questions), ErrQuestionIndexOutOfRange)
	}
	return nil
}

func (s *attemptService) moveCursor(attempt *model.Attempt, index int) error {
	if err := s.checkCursorBounds(attempt.TestID, index); err != nil {
		return err
	}
	attempt.CurrentQuestionIndex = index
	if err := s.attemptRepo.Update(attempt); err != nil {
		return fmt.Errorf("failed to save question position: %w", err)
	}
	return nil
}

// Submit finalizes the attempt: recomputes the score from the recorded
// answers against the test's correct answers and freezes the row. A second
// submit on the same attempt returns the already-computed score instead of
// re-scoring or erroring.
func (s *attemptService) Submit(attemptID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}

	mu := s.lockPair(attempt.TestID, attempt.StudentID)
	mu.Lock()
	defer mu.Unlock()

	if attempt.Status == model.AttemptStatusSubmitted {
		log.Info().Uint("attemptID", attemptID).Msg("Submit: attempt already submitted, returning stored score")
		return s.attemptDetail(attemptID)
	}

	questions, err := s.questionRepo.FindByTestID(attempt.TestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for test %d: %w", attempt.TestID, err)
	}
	answers, err := s.answerRepo.FindByAttemptID(attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers for attempt %d: %w", attemptID, err)
	}

	result := s.scoring.Score(questions, answers)
	now := time.Now()

	// Conditional on status so a concurrent submit that got there first wins
	// and this one degrades into a read.
	res := s.db.Model(&model.Attempt{}).
		Where("id = ? AND status = ?", attemptID, model.AttemptStatusInProgress).
		Updates(map[string]interface{}{
			"status":       model.AttemptStatusSubmitted,
			"submitted_at": now,
			"score":        result.Percentage,
		})
	if res.Error != nil {
		log.Error().Err(res.Error).Uint("attemptID", attemptID).Msg("Submit: failed to finalize attempt")
		return nil, fmt.Errorf("failed to finalize attempt: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Info().Uint("attemptID", attemptID).Msg("Submit: lost race to a concurrent submit, returning stored result")
	} else {
		log.Info().Uint("attemptID", attemptID).Int("score", result.Percentage).
			Int("correct", result.CorrectCount).Int("total", result.TotalCount).
			Msg("Submit: attempt finalized")
	}
	return s.attemptDetail(attemptID)
}

func (s *attemptService) GetAttempt(attemptID uint) (*dto.AttemptDetailDTO, error) {
	return s.attemptDetail(attemptID)
}

func (s *attemptService) GetHistory(studentID uint) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("GetHistory: failed to list attempts")
		return nil, fmt.Errorf("error fetching attempts for student %d: %w", studentID, err)
	}

	dtos := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		var summary dto.AttemptSummaryDTO
		if err := copier.Copy(&summary, &attempt); err != nil {
			log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("GetHistory: error copying attempt to summary DTO")
			continue
		}
		summary.TestTitle = attempt.Test.Title
		dtos = append(dtos, summary)
	}
	return dtos, nil
}

// attemptDetail loads the full snapshot the client resumes from: every
// recorded answer and the last saved position, answers ordered by their
// question's position in the test.
func (s *attemptService) attemptDetail(attemptID uint) (*dto.AttemptDetailDTO, error) {
	attempt, err := s.attemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		return nil, fmt.Errorf("attempt not found with ID %d: %w", attemptID, err)
	}

	sort.SliceStable(attempt.Answers, func(i, j int) bool {
		return attempt.Answers[i].Question.OrderInTest < attempt.Answers[j].Question.OrderInTest
	})

	var resp dto.AttemptDetailDTO
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("attemptDetail: error copying attempt to DTO")
		return nil, fmt.Errorf("error preparing attempt response: %w", err)
	}
	resp.TestTitle = attempt.Test.Title

	resp.Answers = make([]dto.AnswerResponseDTO, len(attempt.Answers))
	for i, answer := range attempt.Answers {
		copier.Copy(&resp.Answers[i], &answer)
		// Correctness is revealed only after submission.
		if attempt.Status == model.AttemptStatusSubmitted {
			isCorrect := answer.IsCorrect
			resp.Answers[i].IsCorrect = &isCorrect
		} else {
			resp.Answers[i].IsCorrect = nil
		}
	}
	return &resp, nil
}
