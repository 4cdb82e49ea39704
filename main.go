package main

import (
	"log"
	"net/http"
	"time"

	"github.com/camden-git/biorhythmbackend/config"
	"github.com/camden-git/biorhythmbackend/database"
	"github.com/camden-git/biorhythmbackend/handlers"
	"github.com/camden-git/biorhythmbackend/repository"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("FATAL: Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	personRepo := repository.NewPersonRepository(db)
	calcRepo := repository.NewCalculationRepository(db)
	cycleRepo := repository.NewCycleRecordRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)
	userRepo := repository.NewUserRepository(db)

	log.Printf("Using database: %s", cfg.DatabasePath)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	setupHandler := handlers.NewSetupHandler(userRepo)
	personHandler := &handlers.PersonHandler{PersonRepo: personRepo, CycleRepo: cycleRepo, StatsDB: sqlDB}
	calcHandler := &handlers.CalculationHandler{CalcRepo: calcRepo}
	cycleHandler := &handlers.CycleDataHandler{CycleRepo: cycleRepo}
	analysisHandler := &handlers.AnalysisHandler{AnalysisRepo: analysisRepo}

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Get("/setup/status", setupHandler.GetStatus)
		r.Post("/setup/first-admin", setupHandler.CreateFirstAdmin)

		// read-only admin projections over the stored biorhythm data
		r.Group(func(r chi.Router) {
			r.Use(handlers.AuthMiddleware(userRepo, []byte(cfg.JWTSecret)))

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

			r.Route("/calculations", func(r chi.Router) {
				r.Get("/{calculation_id}", calcHandler.GetCalculation)
			})

			r.Route("/analyses", func(r chi.Router) {
				r.Get("/{analysis_id}", analysisHandler.GetAnalysis)
			})
		})
	})

	serverAddr := ":" + cfg.Port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
