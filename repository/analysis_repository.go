package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/camden-git/biorhythmbackend/models"
	"gorm.io/gorm"
)

// AnalysisRepository handles database operations for cached Analysis results
type AnalysisRepository struct {
	DB *gorm.DB
}

// NewAnalysisRepository creates a new instance of AnalysisRepository
func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{DB: db}
}

// Create inserts a new analysis result
func (r *AnalysisRepository) Create(analysis *models.Analysis) error {
	if analysis.AnalysisDate == 0 {
		analysis.AnalysisDate = time.Now().Unix()
	}
	if analysis.Parameters == "" {
		analysis.Parameters = "{}"
	}
	err := r.DB.Create(analysis).Error
	if err != nil {
		return fmt.Errorf("failed to create %s analysis for person ID %d: %w", analysis.AnalysisType, analysis.PersonID, err)
	}
	return nil
}

// GetByID retrieves an analysis by its ID
func (r *AnalysisRepository) GetByID(id uint) (*models.Analysis, error) {
	var analysis models.Analysis
	err := r.DB.First(&analysis, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get analysis by ID %d: %w", id, err)
	}
	return &analysis, nil
}

// ListByPersonID retrieves all analyses for a person, newest first
func (r *AnalysisRepository) ListByPersonID(personID uint) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.DB.Where("person_id = ?", personID).Order("analysis_date DESC").Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses for person ID %d: %w", personID, err)
	}
	return analyses, nil
}
