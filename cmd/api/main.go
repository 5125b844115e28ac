// Package main is the entry point for the book catalog API server.
// It wires together configuration, the catalog, the optional user database
// and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aoideee/book-catalog/internal/catalog"
	"github.com/aoideee/book-catalog/internal/data"

	_ "github.com/lib/pq" // Register the PostgreSQL driver with database/sql.
)

// appVersion is the current version of the API, shown in logs and the healthcheck.
const appVersion = "1.1.0"

// serverConfig holds all the values that can be tweaked at startup via command-line flags.
type serverConfig struct {
	port        int
	environment string
	logLevel    string
	seed        bool
	db          struct {
		dsn     string // empty disables the user endpoints
		migrate bool
	}
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
}

// applicationDependencies bundles every shared resource that HTTP handlers need.
type applicationDependencies struct {
	config  serverConfig
	logger  *slog.Logger
	catalog *catalog.Service
	users   userStore // nil when no database is configured

	// background is cancelled once the server stops; long-running
	// helpers started by the middleware exit on it.
	background context.Context
}

func main() {
	// A missing .env file is fine; real environment variables win either way.
	_ = godotenv.Load()

	var settings serverConfig

	flag.IntVar(&settings.port, "port", envInt("PORT", 4000), "Server port")
	flag.StringVar(&settings.environment, "env", envString("CATALOG_ENV", "development"), "Environment (development|staging|production)")
	flag.StringVar(&settings.logLevel, "log-level", envString("CATALOG_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	flag.BoolVar(&settings.seed, "seed", true, "Load the sample books at startup")

	flag.StringVar(&settings.db.dsn, "db-dsn", os.Getenv("CATALOG_DB_DSN"), "PostgreSQL DSN for the users table")
	flag.BoolVar(&settings.db.migrate, "db-migrate", true, "Apply pending migrations at startup")

	flag.Float64Var(&settings.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	flag.IntVar(&settings.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	flag.BoolVar(&settings.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(settings.logLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	store := catalog.NewStore()
	if settings.seed {
		store.Reset(catalog.SeedBooks()...)
	}

	background, stop := context.WithCancel(context.Background())
	defer stop()

	app := &applicationDependencies{
		config:     settings,
		logger:     logger,
		catalog:    catalog.NewService(store),
		background: background,
	}

	if settings.db.dsn != "" {
		db, err := openDB(settings)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		defer db.Close()

		logger.Info("database connection pool established")

		if settings.db.migrate {
			if err := data.Migrate(db, logger); err != nil {
				logger.Error(err.Error())
				os.Exit(1)
			}
		}

		app.users = data.NewModels(db).Users
	} else {
		logger.Warn("no database DSN configured; user endpoints are disabled")
	}

	logger.Info("catalog ready", "books", store.Len())

	err := app.serve()
	stop()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

// openDB opens a PostgreSQL connection pool and pings it with a 5-second timeout.
func openDB(settings serverConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", settings.db.dsn)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
