package repository

import (
	"fmt"
	"time"

	"github.com/camden-git/biorhythmbackend/models"
	"gorm.io/gorm"
)

// criticalCondition matches records where any of the three cycles is critical
const criticalCondition = "(physical_critical OR emotional_critical OR intellectual_critical)"

// CycleRecordRepository handles database operations for CycleRecord entities
type CycleRecordRepository struct {
	DB *gorm.DB
}

// NewCycleRecordRepository creates a new instance of CycleRecordRepository
func NewCycleRecordRepository(db *gorm.DB) *CycleRecordRepository {
	return &CycleRecordRepository{DB: db}
}

// WithTx returns a copy of the repository bound to the given transaction handle
func (r *CycleRecordRepository) WithTx(tx *gorm.DB) *CycleRecordRepository {
	return &CycleRecordRepository{DB: tx}
}

// BulkInsert writes a batch of cycle records in a single multi-row INSERT.
// Callers are expected to size batches themselves; the importer inserts one
// chunk per call so it can report progress at chunk boundaries.
func (r *CycleRecordRepository) BulkInsert(records []models.CycleRecord) error {
	if len(records) == 0 {
		return nil
	}
	now := time.Now().Unix()
	for i := range records {
		if records[i].CreatedAt == 0 {
			records[i].CreatedAt = now
		}
	}
	err := r.DB.Create(&records).Error
	if err != nil {
		return fmt.Errorf("failed to bulk-insert %d cycle records: %w", len(records), err)
	}
	return nil
}

// ListByPersonID retrieves a person's cycle records ordered by date,
// optionally narrowed by date range or to critical days only
func (r *CycleRecordRepository) ListByPersonID(personID uint, filter CycleRecordFilter) ([]models.CycleRecord, error) {
	query := r.DB.Where("person_id = ?", personID)
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date <= ?", *filter.To)
	}
	if filter.CriticalOnly {
		query = query.Where(criticalCondition)
	}

	var records []models.CycleRecord
	err := query.Order("date ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cycle records for person ID %d: %w", personID, err)
	}
	return records, nil
}

// DeleteByPersonID removes all of a person's cycle records, returning the
// number of rows deleted. Used before a forced re-import.
func (r *CycleRecordRepository) DeleteByPersonID(personID uint) (int64, error) {
	result := r.DB.Where("person_id = ?", personID).Delete(&models.CycleRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete cycle records for person ID %d: %w", personID, result.Error)
	}
	return result.RowsAffected, nil
}

// CountByPersonID returns the number of stored cycle records for a person
func (r *CycleRecordRepository) CountByPersonID(personID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.CycleRecord{}).Where("person_id = ?", personID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cycle records for person ID %d: %w", personID, err)
	}
	return count, nil
}

// CountCriticalByPersonID returns how many of a person's days have any
// cycle in critical phase
func (r *CycleRecordRepository) CountCriticalByPersonID(personID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.CycleRecord{}).
		Where("person_id = ?", personID).
		Where(criticalCondition).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count critical days for person ID %d: %w", personID, err)
	}
	return count, nil
}
