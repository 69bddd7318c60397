package statstore

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/AmirMakir/speechbot/internal/config"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestOpenEphemeral(t *testing.T) {
	cfg := config.StatsConfig{RetentionMode: "ephemeral"}
	st, err := Open(context.Background(), cfg, newLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if err := st.Append(context.Background(), Record{ChatID: 1, WPM: 130}); err != nil {
		t.Fatalf("append should be a no-op: %v", err)
	}
	sum, err := st.ChatSummary(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Total != 0 {
		t.Fatalf("ephemeral store must stay empty, got %+v", sum)
	}
}

func TestAppendAndSummary(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.StatsConfig{Path: filepath.Join(tmp, "stats.db"), RetentionMode: "persistent"}
	st, err := Open(context.Background(), cfg, newLogger())
	if err != nil {
		t.Fatalf("open stats store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, wpm := range []float64{100, 140, 150} {
		rec := Record{ChatID: 42, WPM: wpm, Fillers: i, DurationSec: 30, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := st.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	if err := st.Append(context.Background(), Record{ChatID: 7, WPM: 90, CreatedAt: base}); err != nil {
		t.Fatalf("append other chat: %v", err)
	}

	sum, err := st.ChatSummary(context.Background(), 42, 2)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Total != 3 {
		t.Fatalf("expected 3 records, got %d", sum.Total)
	}
	if sum.AvgWPM != 130 {
		t.Fatalf("expected avg wpm 130, got %f", sum.AvgWPM)
	}
	if sum.AvgFillers != 1 {
		t.Fatalf("expected avg fillers 1, got %f", sum.AvgFillers)
	}
	if len(sum.RecentWPM) != 2 || sum.RecentWPM[0] != 150 || sum.RecentWPM[1] != 140 {
		t.Fatalf("unexpected recent wpm: %v", sum.RecentWPM)
	}
	if !sum.LastAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("expected last analysis at %v, got %v", base.Add(2*time.Minute), sum.LastAt)
	}
}

func TestLastAnalysisTimeRoundTrips(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.StatsConfig{Path: filepath.Join(tmp, "stats.db"), RetentionMode: "persistent"}
	st, err := Open(context.Background(), cfg, newLogger())
	if err != nil {
		t.Fatalf("open stats store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := st.Append(context.Background(), Record{ChatID: 9, WPM: 125, CreatedAt: at}); err != nil {
		t.Fatalf("append: %v", err)
	}

	sum, err := st.ChatSummary(context.Background(), 9, 5)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.LastAt.IsZero() {
		t.Fatal("LastAt must survive storage")
	}
	if !sum.LastAt.Equal(at) {
		t.Fatalf("expected %v back, got %v", at, sum.LastAt)
	}
}

func TestSummaryEmptyChat(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.StatsConfig{Path: filepath.Join(tmp, "stats.db"), RetentionMode: "persistent"}
	st, err := Open(context.Background(), cfg, newLogger())
	if err != nil {
		t.Fatalf("open stats store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	sum, err := st.ChatSummary(context.Background(), 99, 5)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Total != 0 || len(sum.RecentWPM) != 0 {
		t.Fatalf("expected empty summary, got %+v", sum)
	}
}

func TestPruneByDaysAndCap(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.StatsConfig{
		Path:          filepath.Join(tmp, "stats.db"),
		RetentionMode: "persistent",
		RetentionDays: 1,
		MaxPerChat:    2,
	}
	st, err := Open(context.Background(), cfg, newLogger())
	if err != nil {
		t.Fatalf("open stats store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		rec := Record{ChatID: 1, WPM: 100 + float64(i), CreatedAt: old.Add(time.Duration(i) * time.Minute)}
		if err := st.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	recent := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := Record{ChatID: 1, WPM: 120 + float64(i), CreatedAt: recent.Add(time.Duration(i) * time.Minute)}
		if err := st.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	st.clock = func() time.Time { return time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC) }
	if err := st.Prune(context.Background()); err != nil {
		t.Fatalf("prune: %v", err)
	}

	sum, err := st.ChatSummary(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Total != 2 {
		t.Fatalf("expected 2 records after prune, got %d", sum.Total)
	}
	if len(sum.RecentWPM) != 2 || sum.RecentWPM[0] != 122 || sum.RecentWPM[1] != 121 {
		t.Fatalf("expected newest two kept, got %v", sum.RecentWPM)
	}
}
