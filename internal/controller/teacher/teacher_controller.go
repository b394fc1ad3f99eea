package teacher

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/ltmanh/vocaprep/internal/service"
	"github.com/rs/zerolog/log"
)

// TeacherController owns the instructor-facing surface: sheet creation,
// test generation, and assignment management.
type TeacherController struct {
	sheetService      service.SheetService
	generatorService  service.TestGeneratorService
	assignmentService service.AssignmentService
}

func NewTeacherController(
	sheetService service.SheetService,
	generatorService service.TestGeneratorService,
	assignmentService service.AssignmentService,
) *TeacherController {
	return &TeacherController{
		sheetService:      sheetService,
		generatorService:  generatorService,
		assignmentService: assignmentService,
	}
}

// CreateSheet godoc
// @Summary (Teacher) Create a vocabulary sheet
// @Description Create a sheet from an uploaded image URL (words extracted automatically) or from an explicit word list.
// @Tags Teacher - Sheets & Tests
// @Accept json
// @Produce json
// @Param sheet body dto.SheetCreateDTO true "Sheet title plus image URL or word list"
// @Success 201 {object} dto.SheetResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Extraction or persistence error"
// @Router /teacher/sheets [post]
func (c *TeacherController) CreateSheet(ctx *gin.Context) {
	var req dto.SheetCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateSheet: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	sheet, err := c.sheetService.CreateSheet(ctx.Request.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("CreateSheet: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create sheet", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, sheet)
}

// GetAllSheets godoc
// @Summary (Teacher) List vocabulary sheets
// @Tags Teacher - Sheets & Tests
// @Produce json
// @Success 200 {array} dto.SheetSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/sheets [get]
func (c *TeacherController) GetAllSheets(ctx *gin.Context) {
	sheets, err := c.sheetService.GetAllSheets()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve sheets", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, sheets)
}

// GetSheet godoc
// @Summary (Teacher) Get a sheet with its words
// @Tags Teacher - Sheets & Tests
// @Produce json
// @Param sheet_id path int true "Sheet ID"
// @Success 200 {object} dto.SheetResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Sheet ID format"
// @Failure 404 {object} dto.ErrorResponse "Sheet not found"
// @Router /teacher/sheets/{sheet_id} [get]
func (c *TeacherController) GetSheet(ctx *gin.Context) {
	sheetID, err := strconv.ParseUint(ctx.Param("sheet_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Sheet ID format"})
		return
	}
	sheet, err := c.sheetService.GetSheet(uint(sheetID))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, sheet)
}

// GenerateTests godoc
// @Summary (Teacher) Generate test variants from a sheet
// @Description Generate N independently shuffled test variants over the sheet's words. All-or-nothing: a corpus problem persists no test.
// @Tags Teacher - Sheets & Tests
// @Accept json
// @Produce json
// @Param sheet_id path int true "Sheet ID"
// @Param generation body dto.TestGenerateDTO true "Number of variants"
// @Success 201 {array} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or corpus too small"
// @Failure 404 {object} dto.ErrorResponse "Sheet not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teacher/sheets/{sheet_id}/tests [post]
func (c *TeacherController) GenerateTests(ctx *gin.Context) {
	sheetID, err := strconv.ParseUint(ctx.Param("sheet_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Sheet ID format"})
		return
	}

	var req dto.TestGenerateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	tests, err := c.generatorService.GenerateTests(uint(sheetID), req.VariantCount)
	if err != nil {
		status := statusForGenerateError(err)
		log.Error().Err(err).Uint64("sheetID", sheetID).Msg("GenerateTests: service error")
		ctx.JSON(status, dto.ErrorResponse{Message: "Failed to generate tests", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, tests)
}

// AssignTest godoc
// @Summary (Teacher) Assign a test to a student
// @Description Idempotent: assigning an already assigned (test, student) pair returns the existing assignment.
// @Tags Teacher - Assignments
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param assignment body dto.AssignmentCreateDTO true "Student and optional due date"
// @Success 200 {object} dto.AssignmentResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /teacher/tests/{test_id}/assignments [post]
func (c *TeacherController) AssignTest(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	var req dto.AssignmentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	assignment, err := c.assignmentService.Assign(uint(testID), req.StudentID, req.DueDate)
	if err != nil {
		log.Error().Err(err).Uint64("testID", testID).Uint("studentID", req.StudentID).Msg("AssignTest: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, assignment)
}

// UnassignTest godoc
// @Summary (Teacher) Remove an assignment
// @Tags Teacher - Assignments
// @Param assignment_id path int true "Assignment ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid Assignment ID format"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /teacher/assignments/{assignment_id} [delete]
func (c *TeacherController) UnassignTest(ctx *gin.Context) {
	assignmentID, err := strconv.ParseUint(ctx.Param("assignment_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Assignment ID format"})
		return
	}
	if err := c.assignmentService.Unassign(uint(assignmentID)); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func statusForGenerateError(err error) int {
	switch {
	case errors.Is(err, service.ErrEmptyCorpus), errors.Is(err, service.ErrInsufficientCorpus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
