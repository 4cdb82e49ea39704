package models

import "time"

// Person represents a tracked person in the database using GORM.
// It corresponds to the 'people' table. The (name, birthdate) pair is
// unique: one import subject per identity.
type Person struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_people_name_birthdate" json:"name"`
	Birthdate time.Time `gorm:"type:date;not null;uniqueIndex:idx_people_name_birthdate" json:"birthdate"`
	Email     *string   `gorm:"" json:"email,omitempty"` // Nullable
	Notes     string    `gorm:"" json:"notes"`
	CreatedAt int64     `gorm:"not null" json:"created_at"` // Stored as INTEGER in SQLite, Unix timestamp
	UpdatedAt int64     `gorm:"not null" json:"updated_at"` // Stored as INTEGER in SQLite, Unix timestamp

	// Relationships
	// omitempty will hide these if they are not preloaded or are empty
	Calculations []Calculation `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"calculations,omitempty"`
	CycleRecords []CycleRecord `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"cycle_records,omitempty"`
	Analyses     []Analysis    `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"analyses,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "people"
}

// AgeInDays returns the person's age in whole days at the given reference time.
func (p *Person) AgeInDays(now time.Time) int {
	return int(now.Sub(p.Birthdate).Hours() / 24)
}
