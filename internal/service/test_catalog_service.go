package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/ltmanh/vocaprep/internal/repository"
	"github.com/rs/zerolog/log"
)

// TestCatalogService serves read-only test views. Once created, a test and
// its questions are shared read-only state; any number of attempts may read
// them concurrently.
type TestCatalogService interface {
	GetAllTests() ([]dto.TestSummaryDTO, error)
	GetTestDetails(testID uint) (*dto.TestResponseDTO, error)
}

type testCatalogService struct {
	testRepo repository.TestRepository
}

func NewTestCatalogService(testRepo repository.TestRepository) TestCatalogService {
	return &testCatalogService{testRepo: testRepo}
}

func (s *testCatalogService) GetAllTests() ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get all tests with question count from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:            twc.Test.ID,
			Title:         twc.Test.Title,
			SheetID:       twc.Test.SheetID,
			Variant:       twc.Test.Variant,
			QuestionCount: twc.QuestionCount,
			CreatedAt:     twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

// GetTestDetails returns the test with its ordered questions in the
// student-facing shape: prompts, types and shuffled options, never the
// correct answers.
func (s *testCatalogService) GetTestDetails(testID uint) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Msg("Failed to get test details from repository")
		return nil, fmt.Errorf("test not found with ID %d: %w", testID, err)
	}

	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing test details response: %w", err)
	}
	return &resp, nil
}
