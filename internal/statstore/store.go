// Package statstore persists per-chat analysis history in SQLite.
package statstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/AmirMakir/speechbot/internal/config"
	_ "modernc.org/sqlite"
)

// Record is one stored analysis result.
type Record struct {
	ID          int64
	ChatID      int64
	WPM         float64
	Fillers     int
	DurationSec float64
	CreatedAt   time.Time
}

// Summary aggregates a chat's history for the /stats command.
type Summary struct {
	Total      int
	AvgWPM     float64
	AvgFillers float64
	LastAt     time.Time
	RecentWPM  []float64
}

// Store wraps a SQLite-backed analysis history. In ephemeral mode every call
// is a no-op so the rest of the pipeline never has to care.
type Store struct {
	db    *sql.DB
	cfg   config.StatsConfig
	log   *slog.Logger
	clock func() time.Time
}

// Open initializes the store according to config.
func Open(ctx context.Context, cfg config.StatsConfig, log *slog.Logger) (*Store, error) {
	if cfg.RetentionMode == "ephemeral" {
		return &Store{cfg: cfg, log: log, clock: time.Now}, nil
	}

	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := &Store{db: db, cfg: cfg, log: log, clock: time.Now}

	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if cfg.VacuumOnStart {
		if err := s.vacuum(ctx); err != nil {
			log.Warn("stats store vacuum failed", slog.String("error", err.Error()))
		}
	}

	if err := s.Prune(ctx); err != nil {
		log.Warn("stats store prune on start failed", slog.String("error", err.Error()))
	}

	return s, nil
}

func (s *Store) initSchema(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS analyses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_id INTEGER NOT NULL,
    wpm REAL NOT NULL,
    fillers INTEGER NOT NULL,
    duration_sec REAL NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analyses_chat_created ON analyses(chat_id, created_at);
`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

func (s *Store) vacuum(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx, "VACUUM")
	return err
}

// Close releases underlying resources.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append writes one analysis result into the store.
func (s *Store) Append(ctx context.Context, rec Record) error {
	if s.db == nil {
		return nil
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.clock().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses(chat_id, wpm, fillers, duration_sec, created_at)
		 VALUES(?, ?, ?, ?, ?)`,
		rec.ChatID, rec.WPM, rec.Fillers, rec.DurationSec, rec.CreatedAt)
	return err
}

// ChatSummary aggregates a chat's stored history. recentLimit caps the
// RecentWPM slice, newest first.
func (s *Store) ChatSummary(ctx context.Context, chatID int64, recentLimit int) (Summary, error) {
	if s.db == nil {
		return Summary{}, nil
	}
	if recentLimit <= 0 {
		recentLimit = 5
	}

	var sum Summary
	var avgWPM, avgFillers sql.NullFloat64
	var last sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(wpm), AVG(fillers), MAX(created_at)
		 FROM analyses WHERE chat_id = ?`, chatID).
		Scan(&sum.Total, &avgWPM, &avgFillers, &last)
	if err != nil {
		return Summary{}, err
	}
	sum.AvgWPM = avgWPM.Float64
	sum.AvgFillers = avgFillers.Float64
	if last.Valid {
		sum.LastAt = last.Time
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT wpm FROM analyses WHERE chat_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`, chatID, recentLimit)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var wpm float64
		if err := rows.Scan(&wpm); err != nil {
			return Summary{}, err
		}
		sum.RecentWPM = append(sum.RecentWPM, wpm)
	}
	return sum, rows.Err()
}

// Prune applies configured retention.
func (s *Store) Prune(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if s.cfg.RetentionDays > 0 {
		cutoff := s.clock().Add(-time.Duration(s.cfg.RetentionDays) * 24 * time.Hour)
		if _, err = tx.ExecContext(ctx, `DELETE FROM analyses WHERE created_at < ?`, cutoff.UTC()); err != nil {
			return err
		}
	}
	if s.cfg.MaxPerChat > 0 {
		_, err = tx.ExecContext(ctx, `DELETE FROM analyses WHERE id IN (
			SELECT id FROM analyses a WHERE (
				SELECT COUNT(*) FROM analyses b
				WHERE b.chat_id = a.chat_id AND (b.created_at > a.created_at OR (b.created_at = a.created_at AND b.id > a.id))
			) >= ?
		)`, s.cfg.MaxPerChat)
		if err != nil {
			return err
		}
	}
	err = tx.Commit()
	return err
}
