package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/mail-topology/internal/core"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of the FeatureStore interface
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore creates a new MySQL feature store
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	// Create table if it doesn't exist
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sender_features (
			run_id VARCHAR(36) NOT NULL,
			sender VARCHAR(255) NOT NULL,
			mail_count INT NOT NULL,
			avg_seconds INT NOT NULL,
			avg_weekday INT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (run_id, sender)
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// Save stores the feature rows computed during a run
func (s *MySQLStore) Save(ctx context.Context, runID string, rows []core.SenderFeatures) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		REPLACE INTO sender_features
			(run_id, sender, mail_count, avg_seconds, avg_weekday, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Format("2006-01-02 15:04:05")
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
func (s *MySQLStore) GetRun(ctx context.Context, runID string) ([]core.SenderFeatures, error) {
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
func (s *MySQLStore) DeleteRun(ctx context.Context, runID string) error {
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
func (s *MySQLStore) Stop() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close MySQL database", zap.Error(err))
	}
}
