package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/camden-git/biorhythmbackend/repository"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type AnalysisHandler struct {
	AnalysisRepo repository.AnalysisRepositoryInterface
}

// ListByPerson returns a person's cached analysis results, newest first.
func (ah *AnalysisHandler) ListByPerson(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "person_id")
	personID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid person ID format")
		return
	}

	analyses, err := ah.AnalysisRepo.ListByPersonID(uint(personID))
	if err != nil {
		log.Printf("Error listing analyses for person %d: %v", personID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve analyses")
		return
	}
	writeJSON(w, http.StatusOK, analyses)
}

func (ah *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "analysis_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid analysis ID format")
		return
	}

	analysis, err := ah.AnalysisRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Analysis not found")
		} else {
			log.Printf("Error getting analysis %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve analysis")
		}
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}
