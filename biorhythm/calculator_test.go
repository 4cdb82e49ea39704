package biorhythm

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeSeriesShape(t *testing.T) {
	calc := NewSineCalculator()

	result, err := calc.Compute(date(2000, time.January, 1), date(2000, time.April, 10), 100)
	require.NoError(t, err)
	require.Len(t, result.Days, 100)
	assert.Equal(t, calc.Version(), result.Version)

	// series starts at the target date and runs forward one day at a time
	assert.Equal(t, date(2000, time.April, 10), result.Days[0].Date)
	assert.Equal(t, date(2000, time.July, 18), result.Days[99].Date)

	// 2000-01-01 to 2000-04-10 is exactly 100 days
	assert.Equal(t, 100, result.Days[0].DaysAlive)
	for i, day := range result.Days {
		assert.Equal(t, 100+i, day.DaysAlive)
		assert.Equal(t, result.Days[0].Date.AddDate(0, 0, i), day.Date)
	}
}

func TestComputeValuesInRange(t *testing.T) {
	calc := NewSineCalculator()

	result, err := calc.Compute(date(1985, time.March, 22), date(2024, time.January, 1), 730)
	require.NoError(t, err)

	for _, day := range result.Days {
		for _, v := range []float64{day.Physical, day.Emotional, day.Intellectual} {
			assert.GreaterOrEqual(t, v, -1.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestComputeCriticalFlags(t *testing.T) {
	calc := NewSineCalculator()

	result, err := calc.Compute(date(2000, time.January, 1), date(2000, time.January, 2), 200)
	require.NoError(t, err)

	for _, day := range result.Days {
		expectPhysical := math.Abs(day.Physical) <= criticalWindow(PhysicalCycleDays)+1e-12
		expectEmotional := math.Abs(day.Emotional) <= criticalWindow(EmotionalCycleDays)+1e-12
		expectIntellectual := math.Abs(day.Intellectual) <= criticalWindow(IntellectualCycleDays)+1e-12

		assert.Equal(t, expectPhysical, containsName(day.CriticalCycles, CyclePhysical), "physical on %s", day.Date)
		assert.Equal(t, expectEmotional, containsName(day.CriticalCycles, CycleEmotional), "emotional on %s", day.Date)
		assert.Equal(t, expectIntellectual, containsName(day.CriticalCycles, CycleIntellectual), "intellectual on %s", day.Date)
	}

	// daysAlive 115 is an exact physical zero crossing (5 * 23)
	day := result.Days[114] // daysAlive starts at 1
	require.Equal(t, 115, day.DaysAlive)
	assert.InDelta(t, 0.0, day.Physical, 1e-9)
	assert.Contains(t, day.CriticalCycles, CyclePhysical)
}

func TestComputeCriticalOrderIsFixed(t *testing.T) {
	calc := NewSineCalculator()

	result, err := calc.Compute(date(2000, time.January, 1), date(2000, time.January, 2), 3650)
	require.NoError(t, err)

	order := map[string]int{CyclePhysical: 0, CycleEmotional: 1, CycleIntellectual: 2}
	for _, day := range result.Days {
		for i := 1; i < len(day.CriticalCycles); i++ {
			assert.Less(t, order[day.CriticalCycles[i-1]], order[day.CriticalCycles[i]])
		}
	}
}

func TestComputeRejectsBadInputs(t *testing.T) {
	calc := NewSineCalculator()

	_, err := calc.Compute(date(2000, time.January, 1), date(2000, time.April, 10), 0)
	assert.ErrorIs(t, err, ErrInvalidDayCount)

	_, err = calc.Compute(date(2000, time.April, 10), date(2000, time.April, 10), 10)
	assert.ErrorIs(t, err, ErrBirthdateNotBeforeTarget)

	_, err = calc.Compute(date(2001, time.January, 1), date(2000, time.April, 10), 10)
	assert.ErrorIs(t, err, ErrBirthdateNotBeforeTarget)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2024, time.June, 15, 23, 45, 0, 0, loc)
	assert.Equal(t, date(2024, time.June, 15), DateOnly(in))
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
