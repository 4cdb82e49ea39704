package handlers

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/camden-git/biorhythmbackend/database"
	"github.com/camden-git/biorhythmbackend/models"
	"github.com/camden-git/biorhythmbackend/repository"
	"github.com/facette/natsort"
	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type PersonHandler struct {
	PersonRepo repository.PersonRepositoryInterface
	CycleRepo  repository.CycleRecordRepositoryInterface
	StatsDB    *sql.DB
}

// personView is the list/detail projection of a person.
type personView struct {
	models.Person
	AgeInDays  int   `json:"age_in_days"`
	DataPoints int64 `json:"data_points"`
}

func (ph *PersonHandler) view(person *models.Person) (personView, error) {
	count, err := ph.CycleRepo.CountByPersonID(person.ID)
	if err != nil {
		return personView{}, err
	}
	return personView{
		Person:     *person,
		AgeInDays:  person.AgeInDays(time.Now().UTC()),
		DataPoints: count,
	}, nil
}

// ListPeople returns all people in natural name order. SQL's byte-wise
// ORDER BY puts "Person 10" before "Person 2", so the listing is re-sorted.
func (ph *PersonHandler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := ph.PersonRepo.ListAll()
	if err != nil {
		log.Printf("Error listing people: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve people")
		return
	}

	sort.SliceStable(people, func(i, j int) bool {
		return natsort.Compare(people[i].Name, people[j].Name)
	})

	views := make([]personView, 0, len(people))
	for i := range people {
		view, err := ph.view(&people[i])
		if err != nil {
			log.Printf("Error counting cycle records for person %d: %v", people[i].ID, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve people")
			return
		}
		views = append(views, view)
	}
	writeJSON(w, http.StatusOK, views)
}

func (ph *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	person, ok := ph.personFromURL(w, r)
	if !ok {
		return
	}
	view, err := ph.view(person)
	if err != nil {
		log.Printf("Error counting cycle records for person %d: %v", person.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve person")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetPersonSummary returns the aggregate view over a person's stored data.
func (ph *PersonHandler) GetPersonSummary(w http.ResponseWriter, r *http.Request) {
	person, ok := ph.personFromURL(w, r)
	if !ok {
		return
	}

	stats, err := database.GetPersonStats(ph.StatsDB, person.ID)
	if err != nil {
		log.Printf("Error getting stats for person %d: %v", person.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to compute person summary")
		return
	}

	counts, err := database.ListCalculationCounts(ph.StatsDB, person.ID)
	if err != nil {
		log.Printf("Error getting calculation counts for person %d: %v", person.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to compute person summary")
		return
	}

	view, err := ph.view(person)
	if err != nil {
		log.Printf("Error counting cycle records for person %d: %v", person.ID, err)
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to compute person summary")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"person":       view,
		"stats":        stats,
		"calculations": counts,
	})
}

// personFromURL resolves the {person_id} route parameter, writing the error
// response itself when resolution fails.
func (ph *PersonHandler) personFromURL(w http.ResponseWriter, r *http.Request) (*models.Person, bool) {
	idStr := chi.URLParam(r, "person_id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid person ID format")
		return nil, false
	}

	person, err := ph.PersonRepo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "not_found", "Person not found")
		} else {
			log.Printf("Error getting person %d: %v", id, err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to retrieve person")
		}
		return nil, false
	}
	return person, true
}
