// Package biorhythm computes the classic three-cycle biorhythm time series.
// It stands in for the upstream calculator library: callers depend on the
// Calculator interface and treat the computation as opaque.
package biorhythm

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Cycle lengths, in days, of the published biorhythm model.
const (
	PhysicalCycleDays     = 23
	EmotionalCycleDays    = 28
	IntellectualCycleDays = 33
)

// Cycle names as they appear in per-day critical-cycle lists.
const (
	CyclePhysical     = "Physical"
	CycleEmotional    = "Emotional"
	CycleIntellectual = "Intellectual"
)

// libraryVersion identifies the calculator implementation; it is recorded
// on every calculation row for audit.
const libraryVersion = "go-biorhythm/1.2.0"

var (
	ErrBirthdateNotBeforeTarget = errors.New("birthdate must be strictly before target date")
	ErrInvalidDayCount          = errors.New("day count must be at least 1")
)

// Day holds one computed day of the series. Cycle values lie in [-1.0, 1.0];
// CriticalCycles lists, in fixed Physical/Emotional/Intellectual order, the
// cycles near a zero crossing on that day.
type Day struct {
	Date           time.Time
	DaysAlive      int
	Physical       float64
	Emotional      float64
	Intellectual   float64
	CriticalCycles []string
}

// Result is the ordered output of one computation.
type Result struct {
	Version string
	Days    []Day
}

// Calculator is the computation boundary consumed by the import pipeline.
type Calculator interface {
	// Compute returns one Day per calendar day, starting at targetDate and
	// running forward for the requested number of days.
	Compute(birthdate, targetDate time.Time, days int) (*Result, error)
	Version() string
}

// SineCalculator is the default Calculator. Each cycle is
// sin(2π·daysAlive/length); a cycle is critical on days whose value lies
// within half a day's phase step of a zero crossing.
type SineCalculator struct{}

// NewSineCalculator returns the default calculator.
func NewSineCalculator() *SineCalculator {
	return &SineCalculator{}
}

// Version returns the calculator's version identifier string.
func (c *SineCalculator) Version() string {
	return libraryVersion
}

// DateOnly truncates t to a UTC calendar date. All dates flowing through
// the calculator and the importer are normalized this way so day arithmetic
// is exact.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func cycleValue(daysAlive, cycleDays int) float64 {
	return math.Sin(2 * math.Pi * float64(daysAlive) / float64(cycleDays))
}

// criticalWindow is the magnitude a cycle reaches half a day away from a
// zero crossing; values at or below it mean the crossing falls within this
// calendar day.
func criticalWindow(cycleDays int) float64 {
	return math.Sin(math.Pi / float64(cycleDays))
}

func isCritical(value float64, cycleDays int) bool {
	return math.Abs(value) <= criticalWindow(cycleDays)+1e-12
}

// Compute generates the biorhythm series for the given person and window.
func (c *SineCalculator) Compute(birthdate, targetDate time.Time, days int) (*Result, error) {
	if days < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDayCount, days)
	}

	birth := DateOnly(birthdate)
	target := DateOnly(targetDate)
	if !birth.Before(target) {
		return nil, ErrBirthdateNotBeforeTarget
	}

	result := &Result{
		Version: libraryVersion,
		Days:    make([]Day, 0, days),
	}

	baseDaysAlive := int(target.Sub(birth).Hours() / 24)
	for i := 0; i < days; i++ {
		daysAlive := baseDaysAlive + i
		day := Day{
			Date:         target.AddDate(0, 0, i),
			DaysAlive:    daysAlive,
			Physical:     cycleValue(daysAlive, PhysicalCycleDays),
			Emotional:    cycleValue(daysAlive, EmotionalCycleDays),
			Intellectual: cycleValue(daysAlive, IntellectualCycleDays),
		}

		day.CriticalCycles = []string{}
		if isCritical(day.Physical, PhysicalCycleDays) {
			day.CriticalCycles = append(day.CriticalCycles, CyclePhysical)
		}
		if isCritical(day.Emotional, EmotionalCycleDays) {
			day.CriticalCycles = append(day.CriticalCycles, CycleEmotional)
		}
		if isCritical(day.Intellectual, IntellectualCycleDays) {
			day.CriticalCycles = append(day.CriticalCycles, CycleIntellectual)
		}

		result.Days = append(result.Days, day)
	}

	return result, nil
}
