package models

import "time"

// Analysis types understood by the reporting side.
const (
	AnalysisCorrelation        = "correlation"
	AnalysisTrend              = "trend"
	AnalysisStatisticalSummary = "statistical_summary"
	AnalysisPatternDetection   = "pattern_detection"
	AnalysisCriticalDay        = "critical_day_analysis"
)

// Analysis caches the result of a statistical analysis run over a person's
// stored cycle records. Results and parameters are stored as JSON blobs.
// It corresponds to the 'analyses' table.
type Analysis struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PersonID           uint      `gorm:"not null;index" json:"person_id"`
	AnalysisType       string    `gorm:"not null;index" json:"analysis_type"`
	StartDate          time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate            time.Time `gorm:"type:date;not null" json:"end_date"`
	Results            string    `gorm:"not null" json:"results"` // JSON document
	Summary            string    `gorm:"not null" json:"summary"`
	DataPointsAnalyzed int       `gorm:"not null" json:"data_points_analyzed"`
	Parameters         string    `gorm:"not null;default:'{}'" json:"parameters"` // JSON document
	AnalysisDate       int64     `gorm:"not null" json:"analysis_date"`           // Unix timestamp

	// Relationships
	Person *Person `gorm:"foreignKey:PersonID" json:"-"`
}

// TableName explicitly sets the table name for GORM.
func (Analysis) TableName() string {
	return "analyses"
}
