package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB holds the database connection. It stays nil when no database is configured.
var DB *sql.DB

var schema = []string{
	`CREATE TABLE IF NOT EXISTS issued_work_orders (
		id            BIGSERIAL PRIMARY KEY,
		order_number  TEXT        NOT NULL,
		customer_name TEXT        NOT NULL DEFAULT '',
		vehicle       TEXT        NOT NULL DEFAULT '',
		format        TEXT        NOT NULL,
		item_count    INTEGER     NOT NULL DEFAULT 0,
		issued_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS issued_work_orders_issued_at_idx ON issued_work_orders (issued_at DESC)`,
}

// connectionString returns databaseURL, or one built from DB_* variables.
// An empty result means no database is configured.
func connectionString(databaseURL string) string {
	if databaseURL != "" {
		return databaseURL
	}

	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	dbname := os.Getenv("DB_NAME")
	if host == "" || user == "" || dbname == "" {
		return ""
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, os.Getenv("DB_PASSWORD"), dbname, sslmode)
}

// InitDB opens the issued work order log database. It returns false without
// error when no database is configured.
func InitDB(ctx context.Context, databaseURL string) (bool, error) {
	connStr := connectionString(databaseURL)
	if connStr == "" {
		log.Printf("ℹ️  No database configured, issued work order log disabled")
		return false, nil
	}

	conn, err := sql.Open("pgx", connStr)
	if err != nil {
		return false, fmt.Errorf("failed to open database connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return false, fmt.Errorf("failed to ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			conn.Close()
			return false, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	DB = conn
	log.Printf("✓ Database connection established successfully")
	return true, nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
