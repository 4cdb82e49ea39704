package main

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/camden-git/biorhythmbackend/biorhythm"
	"github.com/camden-git/biorhythmbackend/database"
	"github.com/camden-git/biorhythmbackend/importer"
)

// Flag values.
var (
	flagName       string
	flagBirthdate  string
	flagDays       int
	flagTargetDate string
	flagEmail      string
	flagNotes      string
	flagBatchSize  int
	flagForce      bool
	flagDBPath     string
)

var rootCmd = &cobra.Command{
	Use:   "loadbiorhythm",
	Short: "Load biorhythm data for a person into the database",
	Long: `loadbiorhythm computes a person's biorhythm time series and stores it.

The series starts at the target date (default: today) and runs forward for
the requested number of days. All rows for one invocation are written inside
a single transaction; on any failure nothing is persisted.

Example:
  loadbiorhythm --name "John Doe" --birthdate 1990-05-15 --days 365
  loadbiorhythm --name "Jane Smith" --birthdate 1985-03-22 --days 730 --target-date 2024-01-01 --force`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLoad,
}

func init() {
	rootCmd.Flags().StringVar(&flagName, "name", "", "name of the person (required)")
	rootCmd.Flags().StringVar(&flagBirthdate, "birthdate", "", "birth date in YYYY-MM-DD format (required)")
	rootCmd.Flags().IntVar(&flagDays, "days", 365, "number of days to calculate")
	rootCmd.Flags().StringVar(&flagTargetDate, "target-date", "", "target date for calculation start in YYYY-MM-DD format (default: today)")
	rootCmd.Flags().StringVar(&flagEmail, "email", "", "optional email address")
	rootCmd.Flags().StringVar(&flagNotes, "notes", "", "optional notes about this person")
	rootCmd.Flags().IntVar(&flagBatchSize, "batch-size", 0, "batch size for database inserts (default: $DEFAULT_BATCH_SIZE or 100)")
	rootCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite existing data if the person already exists")
	rootCmd.Flags().StringVar(&flagDBPath, "db", "", "database path (default: $DATABASE_PATH or biorhythm.db)")
	_ = rootCmd.MarkFlagRequired("name")
	_ = rootCmd.MarkFlagRequired("birthdate")
}

// databasePath resolves the database path with flag > env > default
// precedence.
func databasePath() string {
	v := viper.New()
	v.SetDefault("database_path", "biorhythm.db")
	_ = v.BindEnv("database_path", "DATABASE_PATH")
	if flagDBPath != "" {
		v.Set("database_path", flagDBPath)
	}
	return v.GetString("database_path")
}

// batchSize resolves the bulk-insert chunk size with flag > env > default
// precedence. Unparseable or non-positive values fall back to the default.
func batchSize() int {
	v := viper.New()
	v.SetDefault("batch_size", importer.DefaultBatchSize)
	_ = v.BindEnv("batch_size", "DEFAULT_BATCH_SIZE")
	if flagBatchSize > 0 {
		v.Set("batch_size", flagBatchSize)
	}
	if size := v.GetInt("batch_size"); size > 0 {
		return size
	}
	return importer.DefaultBatchSize
}

func parseDateFlag(name, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s %q, use YYYY-MM-DD", importer.ErrInvalidInput, name, value)
	}
	return biorhythm.DateOnly(t), nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded environment from .env")
	}

	birthdate, err := parseDateFlag("birthdate", flagBirthdate)
	if err != nil {
		return err
	}

	targetDate := biorhythm.DateOnly(time.Now())
	if flagTargetDate != "" {
		targetDate, err = parseDateFlag("target date", flagTargetDate)
		if err != nil {
			return err
		}
	}

	dbPath := databasePath()
	db, err := database.InitGormDB(dbPath)
	if err != nil {
		return fmt.Errorf("%w: %v", importer.ErrPersistenceFailed, err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		return fmt.Errorf("%w: %v", importer.ErrPersistenceFailed, err)
	}

	fmt.Printf("Loading biorhythm data for: %s\n", flagName)
	fmt.Printf("Birth date: %s\n", birthdate.Format("2006-01-02"))
	fmt.Printf("Target date: %s\n", targetDate.Format("2006-01-02"))
	fmt.Printf("Days to calculate: %d\n", flagDays)

	imp := importer.New(db, biorhythm.NewSineCalculator())
	summary, err := imp.Run(importer.Params{
		Name:       flagName,
		Birthdate:  birthdate,
		TargetDate: targetDate,
		Days:       flagDays,
		BatchSize:  batchSize(),
		Email:      flagEmail,
		Notes:      flagNotes,
		Force:      flagForce,
		Progress: func(saved, total int) {
			fmt.Printf("Saved %d of %d data points\n", saved, total)
		},
	})
	if err != nil {
		return err
	}

	fmt.Printf("\nSuccessfully loaded biorhythm data\n")
	fmt.Printf("  Person: %s (ID %d)\n", summary.PersonName, summary.PersonID)
	fmt.Printf("  Data points: %d\n", summary.RecordsSaved)
	fmt.Printf("  Date range: %s to %s\n", summary.StartDate.Format("2006-01-02"), summary.EndDate.Format("2006-01-02"))
	fmt.Printf("  Critical days: %d\n", summary.CriticalDays)
	fmt.Printf("  Calculation run: %s\n", summary.RunID)
	return nil
}
