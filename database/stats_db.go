package database

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// PersonStats aggregates a person's stored cycle records for the summary view.
type PersonStats struct {
	DataPoints   int        `json:"data_points"`
	CriticalDays int        `json:"critical_days"`
	FirstDate    *time.Time `json:"first_date,omitempty"`
	LastDate     *time.Time `json:"last_date,omitempty"`
}

// CalculationCount pairs a calculation run with the number of cycle records
// it produced.
type CalculationCount struct {
	CalculationID uint   `json:"calculation_id"`
	RunID         string `json:"run_id"`
	Records       int    `json:"records"`
}

// sqlite stores dates as text; aggregates come back as strings in one of
// these layouts depending on how the row was written.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseStoredDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized stored date %q", raw)
}

// GetPersonStats returns record and critical-day counts plus the covered
// date range for one person.
func GetPersonStats(db *sql.DB, personID uint) (PersonStats, error) {
	var stats PersonStats

	queryBuilder := psql.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN physical_critical OR emotional_critical OR intellectual_critical THEN 1 ELSE 0 END), 0)",
		"MIN(date)",
		"MAX(date)",
	).From("cycle_records").Where(sq.Eq{"person_id": personID})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return PersonStats{}, fmt.Errorf("failed to build SQL query for GetPersonStats: %w", err)
	}

	var minDate, maxDate sql.NullString
	err = db.QueryRow(sqlStr, args...).Scan(&stats.DataPoints, &stats.CriticalDays, &minDate, &maxDate)
	if err != nil {
		return PersonStats{}, fmt.Errorf("failed to query person stats for person %d: %w", personID, err)
	}

	if minDate.Valid {
		t, err := parseStoredDate(minDate.String)
		if err != nil {
			return PersonStats{}, err
		}
		stats.FirstDate = &t
	}
	if maxDate.Valid {
		t, err := parseStoredDate(maxDate.String)
		if err != nil {
			return PersonStats{}, err
		}
		stats.LastDate = &t
	}

	return stats, nil
}

// ListCalculationCounts returns, for each of the person's calculation runs,
// how many cycle records reference it.
func ListCalculationCounts(db *sql.DB, personID uint) ([]CalculationCount, error) {
	queryBuilder := psql.Select("c.id", "c.run_id", "COUNT(r.id)").
		From("calculations c").
		LeftJoin("cycle_records r ON r.calculation_id = c.id").
		Where(sq.Eq{"c.person_id": personID}).
		GroupBy("c.id", "c.run_id").
		OrderBy("c.calculation_date DESC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for ListCalculationCounts: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query calculation counts for person %d: %w", personID, err)
	}
	defer rows.Close()

	var counts []CalculationCount
	for rows.Next() {
		var cc CalculationCount
		if err := rows.Scan(&cc.CalculationID, &cc.RunID, &cc.Records); err != nil {
			return nil, fmt.Errorf("failed to scan calculation count row: %w", err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating calculation count rows: %w", err)
	}

	return counts, nil
}
