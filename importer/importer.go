// Package importer implements the batched, transactional biorhythm import
// pipeline: validate inputs, upsert the person, invoke the calculator,
// record the calculation run and bulk-insert the daily cycle records.
package importer

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/camden-git/biorhythmbackend/biorhythm"
	"github.com/camden-git/biorhythmbackend/models"
	"github.com/camden-git/biorhythmbackend/repository"
)

// Failure taxonomy. Every Run error wraps exactly one of these.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyExists     = errors.New("person already exists")
	ErrComputationFailed = errors.New("biorhythm computation failed")
	ErrPersistenceFailed = errors.New("persistence failed")
)

const (
	MinDays          = 1
	MaxDays          = 3650
	DefaultBatchSize = 100
)

// Params describes one import invocation.
type Params struct {
	Name       string
	Birthdate  time.Time
	TargetDate time.Time // zero value means today
	Days       int
	BatchSize  int // <= 0 means DefaultBatchSize
	Email      string
	Notes      string
	Force      bool

	// Progress, when set, is called after each chunk with the number of
	// records handed to the transaction so far and the total. Chunks are a
	// reporting granularity only; the whole run commits atomically.
	Progress func(saved, total int)
}

// Summary reports a successful run.
type Summary struct {
	PersonID      uint
	PersonName    string
	CalculationID uint
	RunID         string
	RecordsSaved  int
	CriticalDays  int
	StartDate     time.Time
	EndDate       time.Time
}

// Importer runs the pipeline against one database handle and one calculator.
type Importer struct {
	DB   *gorm.DB
	Calc biorhythm.Calculator
}

// New creates an Importer.
func New(db *gorm.DB, calc biorhythm.Calculator) *Importer {
	return &Importer{DB: db, Calc: calc}
}

func (imp *Importer) validate(p *Params) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.Birthdate.IsZero() {
		return fmt.Errorf("%w: birthdate is required", ErrInvalidInput)
	}
	if p.TargetDate.IsZero() {
		p.TargetDate = time.Now()
	}
	p.Birthdate = biorhythm.DateOnly(p.Birthdate)
	p.TargetDate = biorhythm.DateOnly(p.TargetDate)
	if !p.Birthdate.Before(p.TargetDate) {
		return fmt.Errorf("%w: birthdate %s must be before target date %s",
			ErrInvalidInput, p.Birthdate.Format("2006-01-02"), p.TargetDate.Format("2006-01-02"))
	}
	if p.Days < MinDays || p.Days > MaxDays {
		return fmt.Errorf("%w: days must be between %d and %d, got %d", ErrInvalidInput, MinDays, MaxDays, p.Days)
	}
	if p.BatchSize <= 0 {
		p.BatchSize = DefaultBatchSize
	}
	return nil
}

// checkResult verifies the calculator honored its contract: a non-empty
// ordered sequence with all cycle values in [-1.0, 1.0].
func checkResult(result *biorhythm.Result, days int) error {
	if result == nil || len(result.Days) == 0 {
		return fmt.Errorf("%w: calculator returned an empty series", ErrComputationFailed)
	}
	if len(result.Days) != days {
		return fmt.Errorf("%w: calculator returned %d days, expected %d", ErrComputationFailed, len(result.Days), days)
	}
	for _, day := range result.Days {
		for _, v := range []float64{day.Physical, day.Emotional, day.Intellectual} {
			if v < -1.0 || v > 1.0 {
				return fmt.Errorf("%w: cycle value %f on %s outside [-1.0, 1.0]",
					ErrComputationFailed, v, day.Date.Format("2006-01-02"))
			}
		}
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Run executes one import. On any failure the database is left exactly as
// it was before the call; there is no partial success and no retry.
func (imp *Importer) Run(params Params) (*Summary, error) {
	if err := imp.validate(&params); err != nil {
		return nil, err
	}

	people := repository.NewPersonRepository(imp.DB)
	existing, err := people.GetByNameAndBirthdate(params.Name, params.Birthdate)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: looking up person: %v", ErrPersistenceFailed, err)
	}
	if existing != nil && !params.Force {
		return nil, fmt.Errorf("%w: %q born %s; use force to overwrite",
			ErrAlreadyExists, params.Name, params.Birthdate.Format("2006-01-02"))
	}

	// the external call is opaque and non-retryable; it happens before any
	// database write for this run
	result, err := imp.Calc.Compute(params.Birthdate, params.TargetDate, params.Days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrComputationFailed, err)
	}
	if err := checkResult(result, params.Days); err != nil {
		return nil, err
	}

	total := len(result.Days)
	startDate := biorhythm.DateOnly(result.Days[0].Date)
	endDate := biorhythm.DateOnly(result.Days[total-1].Date)

	summary := &Summary{
		PersonName:   params.Name,
		RecordsSaved: total,
		StartDate:    startDate,
		EndDate:      endDate,
	}

	txErr := imp.DB.Transaction(func(tx *gorm.DB) error {
		people := repository.NewPersonRepository(imp.DB).WithTx(tx)
		calcs := repository.NewCalculationRepository(imp.DB).WithTx(tx)
		cycles := repository.NewCycleRecordRepository(imp.DB).WithTx(tx)

		person := existing
		if person == nil {
			person = &models.Person{
				Name:      params.Name,
				Birthdate: params.Birthdate,
				Notes:     params.Notes,
			}
			if params.Email != "" {
				person.Email = &params.Email
			}
			if err := people.Create(person); err != nil {
				return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
			}
		} else {
			// empty values never clear stored fields on a forced re-import
			if params.Email != "" {
				person.Email = &params.Email
			}
			if params.Notes != "" {
				person.Notes = params.Notes
			}
			if err := people.Update(person); err != nil {
				return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
			}
		}

		calculation := &models.Calculation{
			PersonID:          person.ID,
			StartDate:         startDate,
			EndDate:           endDate,
			DaysCalculated:    total,
			TargetDate:        params.TargetDate,
			CalculatorVersion: result.Version,
			Notes:             fmt.Sprintf("Imported %d days via loader", params.Days),
		}
		if err := calcs.Create(calculation); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
		}

		if params.Force && existing != nil {
			if _, err := cycles.DeleteByPersonID(person.ID); err != nil {
				return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
			}
		}

		saved := 0
		for start := 0; start < total; start += params.BatchSize {
			end := start + params.BatchSize
			if end > total {
				end = total
			}

			chunk := make([]models.CycleRecord, 0, end-start)
			for _, day := range result.Days[start:end] {
				chunk = append(chunk, models.CycleRecord{
					PersonID:             person.ID,
					CalculationID:        &calculation.ID,
					Date:                 biorhythm.DateOnly(day.Date),
					DaysAlive:            day.DaysAlive,
					Physical:             day.Physical,
					Emotional:            day.Emotional,
					Intellectual:         day.Intellectual,
					PhysicalCritical:     contains(day.CriticalCycles, models.CyclePhysical),
					EmotionalCritical:    contains(day.CriticalCycles, models.CycleEmotional),
					IntellectualCritical: contains(day.CriticalCycles, models.CycleIntellectual),
				})
			}

			if err := cycles.BulkInsert(chunk); err != nil {
				return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
			}

			saved += len(chunk)
			if params.Progress != nil {
				params.Progress(saved, total)
			}
		}

		criticalDays, err := cycles.CountCriticalByPersonID(person.ID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
		}

		summary.PersonID = person.ID
		summary.CalculationID = calculation.ID
		summary.RunID = calculation.RunID
		summary.CriticalDays = int(criticalDays)
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrPersistenceFailed) {
			return nil, txErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, txErr)
	}

	return summary, nil
}
