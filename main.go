package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"agroyield/adapters/excel"
	"agroyield/adapters/postgres"
	"agroyield/app"
	"agroyield/internal/config"
	"agroyield/internal/errors"
	"agroyield/ports"
	"agroyield/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	var results ports.ResultRepository
	var overrides ports.PriceOverrideReader
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("database initialization failed: %v", err)
		}
		defer db.Close()
		results = postgres.NewResultRepository(db)
		overrides = postgres.NewPriceOverrideRepository(db)
	} else {
		log.Println("no DATABASE_URL set; running without result persistence")
	}

	service := app.NewAdvisoryService(results, overrides)
	service.SetDefaultApplicationCost(appConfig.Defaults.ApplicationCost)
	httpApp := ui.NewApp(service, excel.NewCurveExporter())
	if err := httpApp.Start(ui.Config{Port: appConfig.Server.Port}); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// initDatabase connects to PostgreSQL and ensures the result schema
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.EnsureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}
