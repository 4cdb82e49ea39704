package models

import "time"

// Cycle names in their fixed reporting order.
const (
	CyclePhysical     = "Physical"
	CycleEmotional    = "Emotional"
	CycleIntellectual = "Intellectual"
)

// CycleRecord stores one day's biorhythm values for a person. Each of the
// three cycle values lies in [-1.0, 1.0]; a critical flag is set when the
// calculator reported that cycle near a zero crossing for the day.
// Records are bulk-inserted by the importer and never mutated individually.
// It corresponds to the 'cycle_records' table.
type CycleRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PersonID      uint      `gorm:"not null;uniqueIndex:idx_cycle_records_person_date;index:idx_cycle_records_person" json:"person_id"`
	CalculationID *uint     `gorm:"index" json:"calculation_id,omitempty"` // Nullable, audit grouping only
	Date          time.Time `gorm:"type:date;not null;uniqueIndex:idx_cycle_records_person_date;index" json:"date"`
	DaysAlive     int       `gorm:"not null;index" json:"days_alive"`

	// Cycle values (-1.0 to 1.0)
	Physical     float64 `gorm:"not null" json:"physical"`
	Emotional    float64 `gorm:"not null" json:"emotional"`
	Intellectual float64 `gorm:"not null" json:"intellectual"`

	// Critical day indicators
	PhysicalCritical     bool `gorm:"not null;default:false;index:idx_cycle_records_critical" json:"physical_critical"`
	EmotionalCritical    bool `gorm:"not null;default:false;index:idx_cycle_records_critical" json:"emotional_critical"`
	IntellectualCritical bool `gorm:"not null;default:false;index:idx_cycle_records_critical" json:"intellectual_critical"`

	CreatedAt int64 `gorm:"not null" json:"created_at"` // Unix timestamp

	// Relationships
	Person      *Person      `gorm:"foreignKey:PersonID" json:"-"`
	Calculation *Calculation `gorm:"foreignKey:CalculationID" json:"-"`
}

// TableName explicitly sets the table name for GORM.
func (CycleRecord) TableName() string {
	return "cycle_records"
}

// IsAnyCritical reports whether any of the three cycles is in critical phase.
func (r *CycleRecord) IsAnyCritical() bool {
	return r.PhysicalCritical || r.EmotionalCritical || r.IntellectualCritical
}

// CriticalCycles returns the names of cycles in critical phase, in the
// fixed order Physical, Emotional, Intellectual.
func (r *CycleRecord) CriticalCycles() []string {
	critical := []string{}
	if r.PhysicalCritical {
		critical = append(critical, CyclePhysical)
	}
	if r.EmotionalCritical {
		critical = append(critical, CycleEmotional)
	}
	if r.IntellectualCritical {
		critical = append(critical, CycleIntellectual)
	}
	return critical
}
