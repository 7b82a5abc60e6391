package db

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"lifewithchrist/community/internal/logging"
)

var DB *sqlx.DB

// PostgresDSN assembles the connection string from the PG_* environment.
func PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("PG_USER"),
		os.Getenv("PG_PASSWORD"),
		os.Getenv("PG_HOST"),
		os.Getenv("PG_PORT"),
		os.Getenv("PG_DB"),
	)
}

// InitPostgres opens the sqlx pool the dashboard queries run on. The database
// container may still be starting alongside the server, so the connect is
// retried briefly before giving up.
func InitPostgres() error {
	dsn := PostgresDSN()

	var err error
	for attempt := 1; attempt <= 10; attempt++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			DB.SetMaxOpenConns(20)
			DB.SetMaxIdleConns(5)
			DB.SetConnMaxLifetime(30 * time.Minute)
			return nil
		}
		logging.Warn("Postgres not ready yet, retrying", "attempt", attempt, "error", err.Error())
		time.Sleep(500 * time.Millisecond)
	}
	return fmt.Errorf("postgres unreachable after retries: %w", err)
}
