package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/ltmanh/vocaprep/internal/model"
	"github.com/ltmanh/vocaprep/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TestGeneratorService produces test variants from a sheet's corpus. Each
// variant runs its own synthesis and shuffle pass, so option positions and
// distractor picks differ across variants over the same words.
type TestGeneratorService interface {
	GenerateTests(sheetID uint, variantCount int) ([]dto.TestResponseDTO, error)
}

type testGeneratorService struct {
	sheetRepo   repository.SheetRepository
	testRepo    repository.TestRepository
	synthesizer SynthesizerService
	db          *gorm.DB
}

func NewTestGeneratorService(
	sheetRepo repository.SheetRepository,
	testRepo repository.TestRepository,
	synthesizer SynthesizerService,
	db *gorm.DB,
) TestGeneratorService {
	return &testGeneratorService{
		sheetRepo:   sheetRepo,
		testRepo:    testRepo,
		synthesizer: synthesizer,
		db:          db,
	}
}

// GenerateTests synthesizes variantCount tests over the sheet's words.
// Synthesis for every variant completes before anything is written, and the
// writes share one transaction: a corpus problem surfaces as a validation
// error with no partial test persisted.
func (s *testGeneratorService) GenerateTests(sheetID uint, variantCount int) ([]dto.TestResponseDTO, error) {
	if variantCount < 1 {
		return nil, fmt.Errorf("variant count must be at least 1, got %d", variantCount)
	}

	sheet, err := s.sheetRepo.FindByIDWithWords(sheetID)
	if err != nil {
		log.Error().Err(err).Uint("sheetID", sheetID).Msg("GenerateTests: sheet not found")
		return nil, fmt.Errorf("sheet not found with ID %d: %w", sheetID, err)
	}

	existing, err := s.testRepo.CountBySheetID(sheetID)
	if err != nil {
		return nil, fmt.Errorf("error counting existing tests for sheet %d: %w", sheetID, err)
	}

	tests := make([]model.Test, 0, variantCount)
	for v := 0; v < variantCount; v++ {
		variant := int(existing) + v + 1
		questions, err := s.synthesizer.Synthesize(sheet.Words, DefaultTypeCycle, DefaultChoiceCount)
		if err != nil {
			log.Warn().Err(err).Uint("sheetID", sheetID).Int("variant", variant).Msg("GenerateTests: synthesis failed, nothing persisted")
			return nil, err
		}
		tests = append(tests, model.Test{
			Title:     fmt.Sprintf("%s - Variant %d", sheet.Title, variant),
			SheetID:   sheet.ID,
			Variant:   variant,
			Questions: questions,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range tests {
			if err := tx.Create(&tests[i]).Error; err != nil {
				return fmt.Errorf("failed to create test variant %d: %w", tests[i].Variant, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("sheetID", sheetID).Msg("GenerateTests: transaction failed")
		return nil, err
	}

	dtos := make([]dto.TestResponseDTO, 0, len(tests))
	for i := range tests {
		created, err := s.testRepo.FindByIDWithQuestions(tests[i].ID)
		if err != nil {
			log.Error().Err(err).Uint("testID", tests[i].ID).Msg("GenerateTests: failed to reload created test")
			return nil, fmt.Errorf("error reloading generated test %d: %w", tests[i].ID, err)
		}
		var resp dto.TestResponseDTO
		if err := copier.Copy(&resp, created); err != nil {
			return nil, fmt.Errorf("error preparing test response: %w", err)
		}
		dtos = append(dtos, resp)
	}

	log.Info().Uint("sheetID", sheetID).Int("variants", len(dtos)).Msg("GenerateTests: test variants created")
	return dtos, nil
}
