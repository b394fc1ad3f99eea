package repository

import (
	"github.com/ltmanh/vocaprep/internal/model"
	"gorm.io/gorm"
)

type SheetRepository interface {
	Create(sheet *model.Sheet) error
	FindByID(id uint) (*model.Sheet, error)
	FindByIDWithWords(id uint) (*model.Sheet, error)
	FindAll() ([]model.Sheet, error)
}

type sheetRepository struct {
	db *gorm.DB
}

func NewSheetRepository(db *gorm.DB) SheetRepository {
	return &sheetRepository{db: db}
}

func (r *sheetRepository) Create(sheet *model.Sheet) error {
	// GORM creates the associated words along with the sheet.
	return r.db.Create(sheet).Error
}

func (r *sheetRepository) FindByID(id uint) (*model.Sheet, error) {
	var sheet model.Sheet
	if err := r.db.First(&sheet, id).Error; err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *sheetRepository) FindByIDWithWords(id uint) (*model.Sheet, error) {
	var sheet model.Sheet
	err := r.db.Preload("Words", func(db *gorm.DB) *gorm.DB {
		return db.Order("words.order_in_sheet ASC")
	}).First(&sheet, id).Error
	if err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *sheetRepository) FindAll() ([]model.Sheet, error) {
	var sheets []model.Sheet
	if err := r.db.Order("created_at DESC").Find(&sheets).Error; err != nil {
		return nil, err
	}
	return sheets, nil
}
