package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/camden-git/biorhythmbackend/biorhythm"
	"github.com/camden-git/biorhythmbackend/database"
	"github.com/camden-git/biorhythmbackend/importer"
	"github.com/camden-git/biorhythmbackend/repository"
)

const testJWTSecret = "test-secret"

type testEnv struct {
	db     *gorm.DB
	router *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.InitGormDB(dsn)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrateModels(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)

	personRepo := repository.NewPersonRepository(db)
	calcRepo := repository.NewCalculationRepository(db)
	cycleRepo := repository.NewCycleRecordRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	userRepo := repository.NewUserRepository(db)

	authHandler := NewAuthHandler(userRepo, testJWTSecret, 1)
	setupHandler := NewSetupHandler(userRepo)
	personHandler := &PersonHandler{PersonRepo: personRepo, CycleRepo: cycleRepo, StatsDB: sqlDB}
	calcHandler := &CalculationHandler{CalcRepo: calcRepo}
	cycleHandler := &CycleDataHandler{CycleRepo: cycleRepo}
	analysisHandler := &AnalysisHandler{AnalysisRepo: analysisRepo}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Get("/setup/status", setupHandler.GetStatus)
		r.Post("/setup/first-admin", setupHandler.CreateFirstAdmin)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(userRepo, []byte(testJWTSecret)))
			r.Route("/people", func(r chi.Router) {
				r.Get("/", personHandler.ListPeople)
				r.Route("/{person_id}", func(r chi.Router) {
					r.Get("/", personHandler.GetPerson)
					r.Get("/summary", personHandler.GetPersonSummary)
					r.Get("/calculations", calcHandler.ListByPerson)
					r.Get("/cycles", cycleHandler.ListByPerson)
					r.Get("/analyses", analysisHandler.ListByPerson)
				})
			})
			r.Get("/calculations/{calculation_id}", calcHandler.GetCalculation)
			r.Get("/analyses/{analysis_id}", analysisHandler.GetAnalysis)
		})
	})

	return &testEnv{db: db, router: r}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// bootstrap creates the first admin and returns a login token.
func (e *testEnv) bootstrap(t *testing.T) string {
	t.Helper()
	rec := e.request(t, http.MethodPost, "/api/setup/first-admin", "", map[string]string{
		"username": "admin", "password": "admin-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin", "password": "admin-password",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (e *testEnv) importSeries(t *testing.T, name string, days int) *importer.Summary {
	t.Helper()
	imp := importer.New(e.db, biorhythm.NewSineCalculator())
	summary, err := imp.Run(importer.Params{
		Name:       name,
		Birthdate:  time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		TargetDate: time.Date(2000, time.April, 10, 0, 0, 0, 0, time.UTC),
		Days:       days,
	})
	require.NoError(t, err)
	return summary
}

func TestSetupAndLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/setup/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"setup_required": true}`, rec.Body.String())

	token := env.bootstrap(t)
	assert.NotEmpty(t, token)

	rec = env.request(t, http.MethodGet, "/api/setup/status", "", nil)
	assert.JSONEq(t, `{"setup_required": false}`, rec.Body.String())

	// second first-admin attempt is refused
	rec = env.request(t, http.MethodPost, "/api/setup/first-admin", "", map[string]string{
		"username": "intruder", "password": "intruder-password",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// wrong password
	rec = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin", "password": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDataRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)
	env.bootstrap(t)

	rec := env.request(t, http.MethodGet, "/api/people", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/people", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListPeopleNaturalOrder(t *testing.T) {
	env := newTestEnv(t)
	token := env.bootstrap(t)

	for _, name := range []string{"Person 10", "Person 2", "Person 1"} {
		env.importSeries(t, name, 5)
	}

	rec := env.request(t, http.MethodGet, "/api/people", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var people []struct {
		Name       string `json:"name"`
		DataPoints int64  `json:"data_points"`
		AgeInDays  int    `json:"age_in_days"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &people))
	require.Len(t, people, 3)
	assert.Equal(t, "Person 1", people[0].Name)
	assert.Equal(t, "Person 2", people[1].Name)
	assert.Equal(t, "Person 10", people[2].Name)
	assert.EqualValues(t, 5, people[0].DataPoints)
}

func TestGetPersonAndSummary(t *testing.T) {
	env := newTestEnv(t)
	token := env.bootstrap(t)
	summary := env.importSeries(t, "Test Person", 100)

	rec := env.request(t, http.MethodGet, fmt.Sprintf("/api/people/%d", summary.PersonID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var person struct {
		Name       string `json:"name"`
		DataPoints int64  `json:"data_points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &person))
	assert.Equal(t, "Test Person", person.Name)
	assert.EqualValues(t, 100, person.DataPoints)

	rec = env.request(t, http.MethodGet, fmt.Sprintf("/api/people/%d/summary", summary.PersonID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got struct {
		Stats struct {
			DataPoints   int `json:"data_points"`
			CriticalDays int `json:"critical_days"`
		} `json:"stats"`
		Calculations []struct {
			Records int `json:"records"`
		} `json:"calculations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 100, got.Stats.DataPoints)
	assert.Equal(t, summary.CriticalDays, got.Stats.CriticalDays)
	require.Len(t, got.Calculations, 1)
	assert.Equal(t, 100, got.Calculations[0].Records)

	rec = env.request(t, http.MethodGet, "/api/people/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/people/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListCyclesWithFilters(t *testing.T) {
	env := newTestEnv(t)
	token := env.bootstrap(t)
	summary := env.importSeries(t, "Test Person", 100)

	base := fmt.Sprintf("/api/people/%d/cycles", summary.PersonID)

	rec := env.request(t, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []struct {
		Date           time.Time `json:"date"`
		CriticalCycles []string  `json:"critical_cycles"`
		IsAnyCritical  bool      `json:"is_any_critical"`
		Physical       float64   `json:"physical"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 100)

	critical := 0
	for _, row := range all {
		assert.GreaterOrEqual(t, row.Physical, -1.0)
		assert.LessOrEqual(t, row.Physical, 1.0)
		assert.Equal(t, len(row.CriticalCycles) > 0, row.IsAnyCritical)
		if row.IsAnyCritical {
			critical++
		}
	}
	assert.Equal(t, summary.CriticalDays, critical)

	rec = env.request(t, http.MethodGet, base+"?critical=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var onlyCritical []struct {
		IsAnyCritical bool `json:"is_any_critical"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &onlyCritical))
	assert.Len(t, onlyCritical, critical)

	rec = env.request(t, http.MethodGet, base+"?from=2000-04-10&to=2000-04-19", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ranged []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranged))
	assert.Len(t, ranged, 10)

	rec = env.request(t, http.MethodGet, base+"?from=not-a-date", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// failingCycleRepo breaks the record count to exercise the error path.
type failingCycleRepo struct {
	repository.CycleRecordRepositoryInterface
}

func (failingCycleRepo) CountByPersonID(personID uint) (int64, error) {
	return 0, fmt.Errorf("count unavailable")
}

func TestGetPersonCountFailureIsAnError(t *testing.T) {
	env := newTestEnv(t)
	summary := env.importSeries(t, "Test Person", 5)

	handler := &PersonHandler{
		PersonRepo: repository.NewPersonRepository(env.db),
		CycleRepo:  failingCycleRepo{},
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/people/%d", summary.PersonID), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("person_id", fmt.Sprint(summary.PersonID))
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	handler.GetPerson(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "data_points")

	rec = httptest.NewRecorder()
	handler.ListPeople(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCalculationEndpoints(t *testing.T) {
	env := newTestEnv(t)
	token := env.bootstrap(t)
	summary := env.importSeries(t, "Test Person", 50)

	rec := env.request(t, http.MethodGet, fmt.Sprintf("/api/people/%d/calculations", summary.PersonID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var calcs []struct {
		RunID          string `json:"run_id"`
		DaysCalculated int    `json:"days_calculated"`
		DateRange      string `json:"date_range"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &calcs))
	require.Len(t, calcs, 1)
	assert.Equal(t, summary.RunID, calcs[0].RunID)
	assert.Equal(t, 50, calcs[0].DaysCalculated)
	assert.Contains(t, calcs[0].DateRange, " to ")

	rec = env.request(t, http.MethodGet, fmt.Sprintf("/api/calculations/%d", summary.CalculationID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/calculations/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
