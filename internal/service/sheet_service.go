package service

import (
	"context"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ltmanh/vocaprep/internal/dto"
	"github.com/ltmanh/vocaprep/internal/model"
	"github.com/ltmanh/vocaprep/internal/repository"
	"github.com/rs/zerolog/log"
)

// SheetService creates and serves vocabulary sheets. A sheet's words come
// either from the extraction collaborator (image upload) or straight from the
// request body; once created they are read-only corpus for test generation.
type SheetService interface {
	CreateSheet(ctx context.Context, req dto.SheetCreateDTO) (*dto.SheetResponseDTO, error)
	GetSheet(sheetID uint) (*dto.SheetResponseDTO, error)
	GetAllSheets() ([]dto.SheetSummaryDTO, error)
}

type sheetService struct {
	sheetRepo  repository.SheetRepository
	extraction WordExtractionService
}

func NewSheetService(sheetRepo repository.SheetRepository, extraction WordExtractionService) SheetService {
	return &sheetService{sheetRepo: sheetRepo, extraction: extraction}
}

func (s *sheetService) CreateSheet(ctx context.Context, req dto.SheetCreateDTO) (*dto.SheetResponseDTO, error) {
	pairs := req.Words
	if len(pairs) == 0 && req.ImageURL != nil && *req.ImageURL != "" {
		extracted, err := s.extraction.ExtractWords(ctx, *req.ImageURL)
		if err != nil {
			log.Error().Err(err).Str("imageURL", *req.ImageURL).Msg("CreateSheet: word extraction failed")
			return nil, fmt.Errorf("word extraction failed: %w", err)
		}
		pairs = extracted
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("sheet needs either an image to extract from or an explicit word list")
	}

	sheet := model.Sheet{
		Title:          req.Title,
		SourceImageURL: req.ImageURL,
	}
	for i, pair := range pairs {
		sheet.Words = append(sheet.Words, model.Word{
			Word:         pair.Word,
			Definition:   pair.Definition,
			OrderInSheet: i + 1,
		})
	}

	if err := s.sheetRepo.Create(&sheet); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateSheet: failed to create sheet")
		return nil, fmt.Errorf("database error creating sheet: %w", err)
	}
	log.Info().Uint("sheetID", sheet.ID).Int("wordCount", len(sheet.Words)).Msg("Sheet created")
	return s.sheetDTO(&sheet), nil
}

func (s *sheetService) GetSheet(sheetID uint) (*dto.SheetResponseDTO, error) {
	sheet, err := s.sheetRepo.FindByIDWithWords(sheetID)
	if err != nil {
		log.Warn().Err(err).Uint("sheetID", sheetID).Msg("GetSheet: sheet not found")
		return nil, fmt.Errorf("sheet not found with ID %d: %w", sheetID, err)
	}
	return s.sheetDTO(sheet), nil
}

func (s *sheetService) GetAllSheets() ([]dto.SheetSummaryDTO, error) {
	sheets, err := s.sheetRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("GetAllSheets: failed to list sheets")
		return nil, fmt.Errorf("error fetching sheets: %w", err)
	}

	dtos := make([]dto.SheetSummaryDTO, 0, len(sheets))
	for _, sheet := range sheets {
		dtos = append(dtos, dto.SheetSummaryDTO{
			ID:        sheet.ID,
			Title:     sheet.Title,
			CreatedAt: sheet.CreatedAt,
		})
	}
	return dtos, nil
}

func (s *sheetService) sheetDTO(sheet *model.Sheet) *dto.SheetResponseDTO {
	var resp dto.SheetResponseDTO
	copier.Copy(&resp, sheet)
	return &resp
}
