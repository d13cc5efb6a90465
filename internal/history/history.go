// Package history records run summaries in a MySQL database so past runs
// can be compared after the JSON results file has been overwritten.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"xtp/internal/config"
	"xtp/internal/domain"
)

// Store persists run summaries
type Store struct {
	db *sql.DB
}

// Open connects to the history database, creating the database and the runs
// table if they do not exist. Connection settings come from the project's
// .env file or the environment (XTP_DB_HOST, XTP_DB_PORT, XTP_DB_USERNAME,
// XTP_DB_PASSWORD, XTP_DB_DATABASE).
func Open(cfg *config.Config) (*Store, error) {
	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load(cfg.GetEnvPath())

	host := envOr("XTP_DB_HOST", "127.0.0.1")
	port := envOr("XTP_DB_PORT", "3306")
	user := envOr("XTP_DB_USERNAME", "root")
	password := envOr("XTP_DB_PASSWORD", "")
	dbName := envOr("XTP_DB_DATABASE", "xtp")

	if !isValidDatabaseName(dbName) {
		return nil, fmt.Errorf("invalid history database name: %s", dbName)
	}

	// Connect without a database first so the database can be created.
	server, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/", user, password, host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer server.Close()
	if err := server.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database server: %w", err)
	}
	if _, err := server.Exec(fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", dbName)); err != nil {
		return nil, fmt.Errorf("failed to create database %s: %w", dbName, err)
	}

	db, err := sql.Open("mysql", fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, password, host, port, dbName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbName, err)
	}
	if _, err := db.Exec(createRunsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}
	return &Store{db: db}, nil
}

const createRunsTable = `CREATE TABLE IF NOT EXISTS runs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	total_cases INT NOT NULL,
	passed_cases INT NOT NULL,
	failed_cases INT NOT NULL,
	skipped_cases INT NOT NULL,
	duration_seconds DOUBLE NOT NULL,
	workers INT NOT NULL,
	ran_at VARCHAR(64) NOT NULL
)`

// Record inserts one run summary.
func (s *Store) Record(meta domain.RunMeta) error {
	_, err := s.db.Exec(
		"INSERT INTO runs (total_cases, passed_cases, failed_cases, skipped_cases, duration_seconds, workers, ran_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		meta.TotalCases, meta.PassedCases, meta.FailedCases, meta.SkippedCases, meta.DurationSeconds, meta.Workers, meta.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the most recent run summaries, newest first.
func (s *Store) Recent(limit int) ([]domain.RunMeta, error) {
	if limit <= 0 {
		limit = config.DefaultHistoryLimit
	}
	rows, err := s.db.Query(
		"SELECT total_cases, passed_cases, failed_cases, skipped_cases, duration_seconds, workers, ran_at FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var metas []domain.RunMeta
	for rows.Next() {
		var m domain.RunMeta
		if err := rows.Scan(&m.TotalCases, &m.PassedCases, &m.FailedCases, &m.SkippedCases, &m.DurationSeconds, &m.Workers, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// isValidDatabaseName validates the database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	upper := strings.ToUpper(name)
	return upper != "DROP" && upper != "DELETE" && upper != "TRUNCATE"
}
