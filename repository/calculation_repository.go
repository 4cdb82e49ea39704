package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/camden-git/biorhythmbackend/models"
	"gorm.io/gorm"
)

// CalculationRepository handles database operations for Calculation entities
type CalculationRepository struct {
	DB *gorm.DB
}

// NewCalculationRepository creates a new instance of CalculationRepository
func NewCalculationRepository(db *gorm.DB) *CalculationRepository {
	return &CalculationRepository{DB: db}
}

// WithTx returns a copy of the repository bound to the given transaction handle
func (r *CalculationRepository) WithTx(tx *gorm.DB) *CalculationRepository {
	return &CalculationRepository{DB: tx}
}

// Create inserts a new calculation-run record
func (r *CalculationRepository) Create(calc *models.Calculation) error {
	if calc.CalculationDate == 0 {
		calc.CalculationDate = time.Now().Unix()
	}
	err := r.DB.Create(calc).Error
	if err != nil {
		return fmt.Errorf("failed to create calculation for person ID %d: %w", calc.PersonID, err)
	}
	return nil
}

// GetByID retrieves a calculation by its ID
func (r *CalculationRepository) GetByID(id uint) (*models.Calculation, error) {
	var calc models.Calculation
	err := r.DB.First(&calc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get calculation by ID %d: %w", id, err)
	}
	return &calc, nil
}

// ListByPersonID retrieves all calculations for a person, newest first
func (r *CalculationRepository) ListByPersonID(personID uint) ([]models.Calculation, error) {
	var calcs []models.Calculation
	err := r.DB.Where("person_id = ?", personID).Order("calculation_date DESC").Find(&calcs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations for person ID %d: %w", personID, err)
	}
	return calcs, nil
}
