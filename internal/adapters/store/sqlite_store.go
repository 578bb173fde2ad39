package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// SQLiteStore is a SQLite implementation of the FeatureStore interface
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore creates a new SQLite feature store
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sender_features (
			run_id TEXT NOT NULL,
			sender TEXT NOT NULL,
			mail_count INTEGER NOT NULL,
			avg_seconds INTEGER NOT NULL,
			avg_weekday INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (run_id, sender)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Save stores the feature rows computed during a run
func (s *SQLiteStore) Save(ctx context.Context, runID string, rows []core.SenderFeatures) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO sender_features
			(run_id, sender, mail_count, avg_seconds, avg_weekday, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Format(time.RFC3339)
	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, runID, row.Sender, row.MailCount, row.AvgSeconds, row.AvgWeekday, now); err != nil {
			return fmt.Errorf("failed to insert feature row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feature rows: %w", err)
	}

	s.logger.Debug("Stored feature rows",
		zap.String("run_id", runID),
		zap.Int("rows", len(rows)))
	return nil
}

// GetRun retrieves the feature rows stored for a run
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) ([]core.SenderFeatures, error) {
	result, err := s.db.QueryContext(ctx, `
		SELECT sender, mail_count, avg_seconds, avg_weekday
		FROM sender_features
		WHERE run_id = ?
		ORDER BY sender
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feature rows: %w", err)
	}
	defer result.Close()

	var rows []core.SenderFeatures
	for result.Next() {
		var row core.SenderFeatures
		if err := result.Scan(&row.Sender, &row.MailCount, &row.AvgSeconds, &row.AvgWeekday); err != nil {
			return nil, fmt.Errorf("failed to scan feature row: %w", err)
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feature rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrRunNotFound
	}

	return rows, nil
}

// DeleteRun removes all rows stored for a run
func (s *SQLiteStore) DeleteRun(ctx context.Context, runID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM sender_features
		WHERE run_id = ?
	`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete feature rows: %w", err)
	}
	return nil
}

// Stop closes the database connection
func (s *SQLiteStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close SQLite database", zap.Error(err))
	}
}
