package service

import (
	"sync"
	"testing"

	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/ltmanh/vocaprep/internal/model"
	"github.com/ltmanh/vocaprep/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAttemptServiceForTest(db *gorm.DB) AttemptService {
	return NewAttemptService(
		repository.NewTestRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewAnswerRepository(db),
		NewScoringService(),
		db,
	)
}

func intPtr(v int) *int { return &v }

func TestStartIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	first, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusInProgress, first.Status)
	assert.Equal(t, 0, first.CurrentQuestionIndex)

	second, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.Attempt{}).Where("test_id = ? AND student_id = ?", test.ID, 1).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStartUnknownTest(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptServiceForTest(db)

	_, err := svc.Start(999, 1)
	assert.Error(t, err)
}

func TestStartSeparateAttemptsPerStudentAndTest(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	alice, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	bob, err := svc.Start(test.ID, 2)
	require.NoError(t, err)
	assert.NotEqual(t, alice.ID, bob.ID)
}

func TestSaveAnswerAndResume(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)

	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{
		QuestionID: test.Questions[0].ID,
		Answer:     test.Questions[0].CorrectAnswer,
	})
	require.NoError(t, err)
	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{
		QuestionID:    test.Questions[1].ID,
		Answer:        "not the definition",
		QuestionIndex: intPtr(5),
	})
	require.NoError(t, err)

	// Resume reproduces the saved answers and position exactly.
	resumed, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, started.ID, resumed.ID)
	assert.Equal(t, 5, resumed.CurrentQuestionIndex)
	require.Len(t, resumed.Answers, 2)
	assert.Equal(t, test.Questions[0].ID, resumed.Answers[0].QuestionID)
	assert.Equal(t, test.Questions[0].CorrectAnswer, resumed.Answers[0].AnswerText)
	assert.Equal(t, test.Questions[1].ID, resumed.Answers[1].QuestionID)
	assert.Equal(t, "not the definition", resumed.Answers[1].AnswerText)

	// Correctness is tracked in storage but not shown mid-attempt.
	var rows []model.Answer
	require.NoError(t, db.Where("attempt_id = ?", started.ID).Order("question_id ASC").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].IsCorrect)
	assert.False(t, rows[1].IsCorrect)
}

func TestSaveAnswerOverwritesPriorValue(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)

	question := test.Questions[2]
	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: question.ID, Answer: "first guess"})
	require.NoError(t, err)
	detail, err := svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: question.ID, Answer: question.CorrectAnswer})
	require.NoError(t, err)

	require.Len(t, detail.Answers, 1)
	assert.Equal(t, question.CorrectAnswer, detail.Answers[0].AnswerText)

	var rows []model.Answer
	require.NoError(t, db.Where("attempt_id = ?", started.ID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsCorrect)
}

func TestSaveAnswerRejectsQuestionFromAnotherTest(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	other := model.Test{
		Title:   "Other Sheet - Variant 1",
		SheetID: test.SheetID,
		Variant: 2,
		Questions: []model.Question{{
			WordID:        test.Questions[0].WordID,
			Prompt:        "Spell the word that means: something else",
			Type:          model.QuestionTypeSpelling,
			CorrectAnswer: "else",
			OrderInTest:   1,
		}},
	}
	require.NoError(t, db.Create(&other).Error)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)

	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: other.Questions[0].ID, Answer: "else"})
	assert.ErrorIs(t, err, ErrQuestionNotInTest)
}

func TestSetCurrentQuestionBounds(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)

	detail, err := svc.SetCurrentQuestion(started.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, 9, detail.CurrentQuestionIndex)

	_, err = svc.SetCurrentQuestion(started.ID, 10)
	assert.ErrorIs(t, err, ErrQuestionIndexOutOfRange)
	_, err = svc.SetCurrentQuestion(started.ID, -1)
	assert.ErrorIs(t, err, ErrQuestionIndexOutOfRange)
}

func TestSubmitScoresTenQuestionAttempt(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)

	// Seven correct answers, three wrong ones.
	for i, question := range test.Questions {
		answer := question.CorrectAnswer
		if i >= 7 {
			answer = "wrong"
		}
		_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: question.ID, Answer: answer})
		require.NoError(t, err)
	}

	submitted, err := svc.Submit(started.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusSubmitted, submitted.Status)
	require.NotNil(t, submitted.Score)
	assert.Equal(t, 70, *submitted.Score)
	assert.NotNil(t, submitted.SubmittedAt)
}

func TestSubmitCountsUnansweredAsIncorrect(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)

	for _, question := range test.Questions[:4] {
		_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: question.ID, Answer: question.CorrectAnswer})
		require.NoError(t, err)
	}

	submitted, err := svc.Submit(started.ID)
	require.NoError(t, err)
	require.NotNil(t, submitted.Score)
	assert.Equal(t, 40, *submitted.Score)
}

func TestSubmitIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	question := test.Questions[0]
	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: question.ID, Answer: question.CorrectAnswer})
	require.NoError(t, err)

	first, err := svc.Submit(started.ID)
	require.NoError(t, err)
	second, err := svc.Submit(started.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.AttemptStatusSubmitted, second.Status)
	require.NotNil(t, second.Score)
	assert.Equal(t, *first.Score, *second.Score)
	assert.Equal(t, first.SubmittedAt.Unix(), second.SubmittedAt.Unix())
}

func TestSubmittedAttemptIsFrozen(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	question := test.Questions[0]
	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: question.ID, Answer: question.CorrectAnswer})
	require.NoError(t, err)

	submitted, err := svc.Submit(started.ID)
	require.NoError(t, err)

	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: test.Questions[1].ID, Answer: "late"})
	assert.ErrorIs(t, err, ErrAttemptClosed)
	_, err = svc.SetCurrentQuestion(started.ID, 3)
	assert.ErrorIs(t, err, ErrAttemptClosed)

	// The stored score and answers are unchanged.
	after, err := svc.GetAttempt(started.ID)
	require.NoError(t, err)
	assert.Equal(t, *submitted.Score, *after.Score)
	assert.Len(t, after.Answers, 1)
}

func TestSaveAnswerOutOfRangeIndexWritesNothing(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	_, err = svc.SetCurrentQuestion(started.ID, 3)
	require.NoError(t, err)

	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{
		QuestionID:    test.Questions[0].ID,
		Answer:        test.Questions[0].CorrectAnswer,
		QuestionIndex: intPtr(10),
	})
	require.ErrorIs(t, err, ErrQuestionIndexOutOfRange)

	// The failed call must leave no partial state: no answer row, position
	// untouched.
	var count int64
	require.NoError(t, db.Model(&model.Answer{}).Where("attempt_id = ?", started.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	detail, err := svc.GetAttempt(started.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.CurrentQuestionIndex)
}

func TestConcurrentSaveAndSubmitStayConsistent(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)

	// Race answer saves against the submit. Saves that land after the freeze
	// must be rejected, never recorded.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for _, question := range test.Questions {
			svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: question.ID, Answer: question.CorrectAnswer})
		}
	}()
	go func() {
		defer wg.Done()
		svc.Submit(started.ID)
	}()
	wg.Wait()

	final, err := svc.GetAttempt(started.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptStatusSubmitted, final.Status)
	require.NotNil(t, final.Score)

	// The frozen score must agree with the answers actually on disk.
	var answers []model.Answer
	require.NoError(t, db.Where("attempt_id = ?", started.ID).Find(&answers).Error)
	questions, err := repository.NewQuestionRepository(db).FindByTestID(test.ID)
	require.NoError(t, err)
	recomputed := NewScoringService().Score(questions, answers)
	assert.Equal(t, recomputed.Percentage, *final.Score)
}

func TestAnswerCorrectnessHiddenUntilSubmit(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)

	detail, err := svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{
		QuestionID: test.Questions[0].ID,
		Answer:     test.Questions[0].CorrectAnswer,
	})
	require.NoError(t, err)
	require.Len(t, detail.Answers, 1)
	assert.Nil(t, detail.Answers[0].IsCorrect, "in-progress snapshot must not reveal correctness")

	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: test.Questions[1].ID, Answer: "wrong"})
	require.NoError(t, err)

	submitted, err := svc.Submit(started.ID)
	require.NoError(t, err)
	require.Len(t, submitted.Answers, 2)
	require.NotNil(t, submitted.Answers[0].IsCorrect)
	assert.True(t, *submitted.Answers[0].IsCorrect)
	require.NotNil(t, submitted.Answers[1].IsCorrect)
	assert.False(t, *submitted.Answers[1].IsCorrect)
}

func TestStartAfterSubmitCreatesFreshAttempt(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	question := test.Questions[0]
	_, err = svc.SaveAnswer(started.ID, dto.AnswerSaveDTO{QuestionID: question.ID, Answer: question.CorrectAnswer, QuestionIndex: intPtr(4)})
	require.NoError(t, err)
	_, err = svc.Submit(started.ID)
	require.NoError(t, err)

	fresh, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	assert.NotEqual(t, started.ID, fresh.ID)
	assert.Equal(t, model.AttemptStatusInProgress, fresh.Status)
	assert.Equal(t, 0, fresh.CurrentQuestionIndex)
	assert.Empty(t, fresh.Answers)
	assert.Nil(t, fresh.Score)
}

func TestGetHistoryListsAllAttempts(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := newAttemptServiceForTest(db)

	started, err := svc.Start(test.ID, 1)
	require.NoError(t, err)
	_, err = svc.Submit(started.ID)
	require.NoError(t, err)
	_, err = svc.Start(test.ID, 1)
	require.NoError(t, err)

	history, err := svc.GetHistory(1)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, summary := range history {
		assert.Equal(t, test.ID, summary.TestID)
		assert.Equal(t, test.Title, summary.TestTitle)
	}

	otherHistory, err := svc.GetHistory(2)
	require.NoError(t, err)
	assert.Empty(t, otherHistory)
}
