package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/ltmanh/vocaprep/internal/model"
	"github.com/ltmanh/vocaprep/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AssignmentService binds tests to students. Assign is idempotent per
// (test, student): a duplicate call returns the existing assignment instead
// of erroring or creating a second row.
type AssignmentService interface {
	Assign(testID, studentID uint, dueDate *time.Time) (*dto.AssignmentResponseDTO, error)
	Unassign(assignmentID uint) error
	ListForStudent(studentID uint) ([]dto.AssignmentResponseDTO, error)
}

type assignmentService struct {
	testRepo       repository.TestRepository
	assignmentRepo repository.AssignmentRepository
}

func NewAssignmentService(testRepo repository.TestRepository, assignmentRepo repository.AssignmentRepository) AssignmentService {
	return &assignmentService{testRepo: testRepo, assignmentRepo: assignmentRepo}
}

func (s *assignmentService) Assign(testID, studentID uint, dueDate *time.Time) (*dto.AssignmentResponseDTO, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Assign: test not found")
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}

	existing, err := s.assignmentRepo.FindByTestAndStudent(testID, studentID)
	if err == nil {
		log.Info().Uint("assignmentID", existing.ID).Uint("testID", testID).Uint("studentID", studentID).
			Msg("Assign: test already assigned to student, returning existing assignment")
		return s.assignmentDTO(existing, test.Title), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error looking up assignment: %w", err)
	}

	assignment := model.Assignment{
		TestID:    testID,
		StudentID: studentID,
		DueDate:   dueDate,
	}
	if err := s.assignmentRepo.Create(&assignment); err != nil {
		// A concurrent assign for the same pair may have hit the composite
		// unique index first; resolve into the row it created.
		if raced, lookupErr := s.assignmentRepo.FindByTestAndStudent(testID, studentID); lookupErr == nil {
			log.Info().Uint("assignmentID", raced.ID).Msg("Assign: duplicate suppressed into existing assignment")
			return s.assignmentDTO(raced, test.Title), nil
		}
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("Assign: failed to create assignment")
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return s.assignmentDTO(&assignment, test.Title), nil
}

func (s *assignmentService) Unassign(assignmentID uint) error {
	if _, err := s.assignmentRepo.FindByID(assignmentID); err != nil {
		return fmt.Errorf("assignment not found with ID %d: %w", assignmentID, err)
	}
	if err := s.assignmentRepo.Delete(assignmentID); err != nil {
		log.Error().Err(err).Uint("assignmentID", assignmentID).Msg("Unassign: failed to delete assignment")
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

func (s *assignmentService) ListForStudent(studentID uint) ([]dto.AssignmentResponseDTO, error) {
	assignments, err := s.assignmentRepo.FindAllByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("ListForStudent: failed to list assignments")
		return nil, fmt.Errorf("error fetching assignments for student %d: %w", studentID, err)
	}

	dtos := make([]dto.AssignmentResponseDTO, 0, len(assignments))
	for _, assignment := range assignments {
		dtos = append(dtos, *s.assignmentDTO(&assignment, assignment.Test.Title))
	}
	return dtos, nil
}

func (s *assignmentService) assignmentDTO(assignment *model.Assignment, testTitle string) *dto.AssignmentResponseDTO {
	var resp dto.AssignmentResponseDTO
	copier.Copy(&resp, assignment)
	resp.TestTitle = testTitle
	return &resp
}
