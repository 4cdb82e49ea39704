package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/camden-git/biorhythmbackend/models"
	"github.com/camden-git/biorhythmbackend/repository"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type CalculationHandler struct {
	CalcRepo repository.CalculationRepositoryInterface
}

// calculationView adds the derived date-range string to a calculation row.
type calculationView struct {
	models.Calculation
	DateRange string `json:"date_range"`
}

func calcView(c *models.Calculation) calculationView {
	return calculationView{Calculation: *c, DateRange: c.DateRangeString()}
}

// ListByPerson returns a person's calculation runs, newest first.
func (ch *CalculationHandler) ListByPerson(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "person_id")
	personID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid person ID format")
		return
	}

	calcs, err := ch.CalcRepo.ListByPersonID(uint(personID))
	if err != nil {
		log.Printf("Error listing calculations for person %d: %v", personID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve calculations")
		return
	}

	views := make([]calculationView, 0, len(calcs))
	for i := range calcs {
		views = append(views, calcView(&calcs[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (ch *CalculationHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "calculation_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid calculation ID format")
		return
	}

	calc, err := ch.CalcRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Calculation not found")
		} else {
			log.Printf("Error getting calculation %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve calculation")
		}
		return
	}
	writeJSON(w, http.StatusOK, calcView(calc))
}
