package repository

import (
	"github.com/ltmanh/vocaprep/internal/model"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(assignment *model.Assignment) error
	FindByID(id uint) (*model.Assignment, error)
	FindByTestAndStudent(testID, studentID uint) (*model.Assignment, error)
	FindAllByStudent(studentID uint) ([]model.Assignment, error)
	Delete(id uint) error
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(assignment *model.Assignment) error {
	return r.db.Create(assignment).Error
}

func (r *assignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	if err := r.db.First(&assignment, id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindByTestAndStudent(testID, studentID uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.Where("test_id = ? AND student_id = ?", testID, studentID).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindAllByStudent(studentID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.Preload("Test").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) Delete(id uint) error {
	// Hard delete so the (test, student) pair can be assigned again without
	// tripping the composite unique index on a leftover row.
	return r.db.Unscoped().Delete(&model.Assignment{}, id).Error
}
