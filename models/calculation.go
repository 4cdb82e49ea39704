package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Calculation records the metadata of one import run: the date range it
// covered, how many cycle records it produced and which calculator version
// produced them. Rows are immutable after creation.
// It corresponds to the 'calculations' table.
type Calculation struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID             string    `gorm:"uniqueIndex;not null" json:"run_id"` // UUID, audit identifier for the run
	PersonID          uint      `gorm:"not null;index" json:"person_id"`
	StartDate         time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate           time.Time `gorm:"type:date;not null" json:"end_date"`
	DaysCalculated    int       `gorm:"not null" json:"days_calculated"`
	TargetDate        time.Time `gorm:"type:date;not null" json:"target_date"`
	CalculatorVersion string    `gorm:"" json:"calculator_version"`
	Notes             string    `gorm:"" json:"notes"`
	CalculationDate   int64     `gorm:"not null" json:"calculation_date"` // Unix timestamp of the run

	// Relationships
	Person       *Person       `gorm:"foreignKey:PersonID" json:"-"`
	CycleRecords []CycleRecord `gorm:"foreignKey:CalculationID;constraint:OnDelete:CASCADE" json:"cycle_records,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Calculation) TableName() string {
	return "calculations"
}

// BeforeCreate assigns a run identifier if the caller did not set one.
func (c *Calculation) BeforeCreate(tx *gorm.DB) error {
	if c.RunID == "" {
		c.RunID = uuid.New().String()
	}
	return nil
}

// DateRangeString returns the covered range in human-readable form.
func (c *Calculation) DateRangeString() string {
	return fmt.Sprintf("%s to %s", c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"))
}
