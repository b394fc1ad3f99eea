package student

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/ltmanh/vocaprep/internal/service"
	"github.com/rs/zerolog/log"
)

// StudentController owns the student-facing surface: the test catalog,
// assignments, and the attempt lifecycle endpoints.
type StudentController struct {
	catalogService    service.TestCatalogService
	assignmentService service.AssignmentService
	attemptService    service.AttemptService
}

func NewStudentController(
	catalogService service.TestCatalogService,
	assignmentService service.AssignmentService,
	attemptService service.AttemptService,
) *StudentController {
	return &StudentController{
		catalogService:    catalogService,
		assignmentService: assignmentService,
		attemptService:    attemptService,
	}
}

// GetAllTests godoc
// @Summary (Student) List available tests
// @Tags Student - Tests & Attempts
// @Produce json
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *StudentController) GetAllTests(ctx *gin.Context) {
	tests, err := c.catalogService.GetAllTests()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve tests", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary (Student) Get a test's questions
// @Description Full question list for taking the test. Correct answers are never included.
// @Tags Student - Tests & Attempts
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id} [get]
func (c *StudentController) GetTestDetails(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}
	test, err := c.catalogService.GetTestDetails(uint(testID))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, test)
}

// GetAssignments godoc
// @Summary (Student) List a student's assignments
// @Tags Student - Assignments
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {array} dto.AssignmentResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Student ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{student_id}/assignments [get]
func (c *StudentController) GetAssignments(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("student_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Student ID format"})
		return
	}
	assignments, err := c.assignmentService.ListForStudent(uint(studentID))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve assignments", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, assignments)
}

// StartAttempt godoc
// @Summary (Student) Start or resume an attempt
// @Description Returns the open attempt for the (test, student) pair if one exists, otherwise creates a fresh one. Safe to retry.
// @Tags Student - Tests & Attempts
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param start body dto.AttemptStartDTO true "Student ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/{test_id}/attempts [post]
func (c *StudentController) StartAttempt(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	var req dto.AttemptStartDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	attempt, err := c.attemptService.Start(uint(testID), req.StudentID)
	if err != nil {
		log.Error().Err(err).Uint64("testID", testID).Uint("studentID", req.StudentID).Msg("StartAttempt: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// SaveAnswer godoc
// @Summary (Student) Save one answer (auto-save target)
// @Description Upserts the answer for a question and optionally moves the navigation position. Called on every answer change; tolerates rapid repeated calls.
// @Tags Student - Tests & Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param answer body dto.AnswerSaveDTO true "Question, answer text, optional position"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or question not in test"
// @Failure 404 {object} dto.ErrorResponse "Attempt or question not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /attempts/{attempt_id}/answers [put]
func (c *StudentController) SaveAnswer(ctx *gin.Context) {
	attemptID, err := strconv.ParseUint(ctx.Param("attempt_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}

	var req dto.AnswerSaveDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	attempt, err := c.attemptService.SaveAnswer(uint(attemptID), req)
	if err != nil {
		c.writeAttemptError(ctx, err, "Failed to save answer")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// SetPosition godoc
// @Summary (Student) Record the current question position
// @Description Persists the question the student is viewing so a later resume lands on the same question.
// @Tags Student - Tests & Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param position body dto.PositionUpdateDTO true "Zero-based question index"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Index out of range"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted"
// @Router /attempts/{attempt_id}/position [put]
func (c *StudentController) SetPosition(ctx *gin.Context) {
	attemptID, err := strconv.ParseUint(ctx.Param("attempt_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}

	var req dto.PositionUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	attempt, err := c.attemptService.SetCurrentQuestion(uint(attemptID), *req.QuestionIndex)
	if err != nil {
		c.writeAttemptError(ctx, err, "Failed to update position")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// SubmitAttempt godoc
// @Summary (Student) Submit an attempt for scoring
// @Description Finalizes the attempt and computes the score. A repeat submit returns the already-computed score.
// @Tags Student - Tests & Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Attempt ID format"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/submit [post]
func (c *StudentController) SubmitAttempt(ctx *gin.Context) {
	attemptID, err := strconv.ParseUint(ctx.Param("attempt_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}

	attempt, err := c.attemptService.Submit(uint(attemptID))
	if err != nil {
		log.Error().Err(err).Uint64("attemptID", attemptID).Msg("SubmitAttempt: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetAttempt godoc
// @Summary (Student) Get an attempt snapshot
// @Description The resume payload: every recorded answer and the last saved question position.
// @Tags Student - Tests & Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Attempt ID format"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *StudentController) GetAttempt(ctx *gin.Context) {
	attemptID, err := strconv.ParseUint(ctx.Param("attempt_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}
	attempt, err := c.attemptService.GetAttempt(uint(attemptID))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// GetAttemptHistory godoc
// @Summary (Student) List a student's attempts
// @Tags Student - Tests & Attempts
// @Produce json
// @Param student_id path int true "Student ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Student ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{student_id}/attempts [get]
func (c *StudentController) GetAttemptHistory(ctx *gin.Context) {
	studentID, err := strconv.ParseUint(ctx.Param("student_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Student ID format"})
		return
	}
	attempts, err := c.attemptService.GetHistory(uint(studentID))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempt history", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

func (c *StudentController) writeAttemptError(ctx *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrAttemptClosed):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	case errors.Is(err, service.ErrQuestionNotInTest), errors.Is(err, service.ErrQuestionIndexOutOfRange):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	default:
		log.Error().Err(err).Msg("attempt endpoint: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	}
}
