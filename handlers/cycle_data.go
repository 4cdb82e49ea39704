package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/camden-git/biorhythmbackend/biorhythm"
	"github.com/camden-git/biorhythmbackend/models"
	"github.com/camden-git/biorhythmbackend/repository"
	"github.com/go-chi/chi/v5"
)

type CycleDataHandler struct {
	CycleRepo repository.CycleRecordRepositoryInterface
}

// cycleRecordView adds the derived critical projections to a stored row.
type cycleRecordView struct {
	models.CycleRecord
	CriticalCycles []string `json:"critical_cycles"`
	IsAnyCritical  bool     `json:"is_any_critical"`
}

// ListByPerson returns a person's cycle records ordered by date.
// Query parameters: from / to (YYYY-MM-DD, inclusive) and critical=true to
// keep only days with at least one critical cycle.
func (ch *CycleDataHandler) ListByPerson(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "person_id")
	personID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid person ID format")
		return
	}

	filter, err := parseCycleFilter(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_filter", err.Error())
		return
	}

	records, err := ch.CycleRepo.ListByPersonID(uint(personID), filter)
	if err != nil {
		log.Printf("Error listing cycle records for person %d: %v", personID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve cycle records")
		return
	}

	views := make([]cycleRecordView, 0, len(records))
	for i := range records {
		views = append(views, cycleRecordView{
			CycleRecord:    records[i],
			CriticalCycles: records[i].CriticalCycles(),
			IsAnyCritical:  records[i].IsAnyCritical(),
		})
	}
	writeJSON(w, http.StatusOK, views)
}

func parseCycleFilter(r *http.Request) (repository.CycleRecordFilter, error) {
	var filter repository.CycleRecordFilter

	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filter, err
		}
		t = biorhythm.DateOnly(t)
		filter.From = &t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filter, err
		}
		t = biorhythm.DateOnly(t)
		filter.To = &t
	}
	filter.CriticalOnly = r.URL.Query().Get("critical") == "true"

	return filter, nil
}
