package repository

import (
	"time"

	"github.com/camden-git/biorhythmbackend/models"
)

// PersonRepositoryInterface defines the methods for person data operations
type PersonRepositoryInterface interface {
	Create(person *models.Person) error
	GetByID(id uint) (*models.Person, error)
	GetByNameAndBirthdate(name string, birthdate time.Time) (*models.Person, error)
	ListAll() ([]models.Person, error)
	Update(person *models.Person) error
	Delete(id uint) error
}

// CalculationRepositoryInterface defines the methods for calculation-run metadata
type CalculationRepositoryInterface interface {
	Create(calc *models.Calculation) error
	GetByID(id uint) (*models.Calculation, error)
	ListByPersonID(personID uint) ([]models.Calculation, error)
}

// CycleRecordFilter narrows cycle-record listings on the read side.
type CycleRecordFilter struct {
	From         *time.Time
	To           *time.Time
	CriticalOnly bool
}

// CycleRecordRepositoryInterface defines the methods for daily cycle records
type CycleRecordRepositoryInterface interface {
	BulkInsert(records []models.CycleRecord) error
	ListByPersonID(personID uint, filter CycleRecordFilter) ([]models.CycleRecord, error)
	DeleteByPersonID(personID uint) (int64, error)
	CountByPersonID(personID uint) (int64, error)
	CountCriticalByPersonID(personID uint) (int64, error)
}

// AnalysisRepositoryInterface defines the methods for cached analysis results
type AnalysisRepositoryInterface interface {
	Create(analysis *models.Analysis) error
	GetByID(id uint) (*models.Analysis, error)
	ListByPersonID(personID uint) ([]models.Analysis, error)
}

// UserRepositoryInterface defines the methods for admin user operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Count() (int64, error)
}
