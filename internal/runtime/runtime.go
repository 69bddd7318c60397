// Package runtime assembles the bot from config and supervises its lifetime.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AmirMakir/speechbot/internal/analysis"
	"github.com/AmirMakir/speechbot/internal/audio"
	"github.com/AmirMakir/speechbot/internal/coach"
	"github.com/AmirMakir/speechbot/internal/config"
	"github.com/AmirMakir/speechbot/internal/i18n"
	"github.com/AmirMakir/speechbot/internal/llm"
	"github.com/AmirMakir/speechbot/internal/session"
	"github.com/AmirMakir/speechbot/internal/statstore"
	"github.com/AmirMakir/speechbot/internal/stt"
	"github.com/AmirMakir/speechbot/internal/telegram"
)

type Runtime struct {
	cfg         config.Config
	logger      *slog.Logger
	httpServer  *http.Server
	tracerClose func(context.Context) error
	ready       atomic.Bool
	wg          sync.WaitGroup
}

func New(cfg config.Config, logger *slog.Logger) *Runtime {
	return &Runtime{
		cfg:    cfg,
		logger: logger,
	}
}

// Start builds the pipeline, runs the bot and the health endpoint, and blocks
// until ctx is cancelled.
func (r *Runtime) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownTelemetry, metricsHandler, err := setupTelemetry(r.cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}
	r.tracerClose = shutdownTelemetry

	stats, err := statstore.Open(ctx, r.cfg.Stats, r.logger.With(slog.String("component", "statstore")))
	if err != nil {
		return fmt.Errorf("open stats store: %w", err)
	}
	defer stats.Close()

	recognizer, err := stt.NewFromConfig(r.cfg.STT)
	if err != nil {
		return fmt.Errorf("build recognizer: %w", err)
	}
	generator, err := llm.NewFromConfig(r.cfg.LLM)
	if err != nil {
		return fmt.Errorf("build generator: %w", err)
	}
	converter, err := audio.NewConverter(r.cfg.Audio)
	if err != nil {
		return fmt.Errorf("build converter: %w", err)
	}
	analyzer := analysis.NewAnalyzer(r.cfg.Analysis)

	pipeline := coach.New(converter, recognizer, generator, analyzer, r.cfg.LLM,
		r.logger.With(slog.String("component", "coach")))

	api, err := telegram.Connect(r.cfg.Telegram)
	if err != nil {
		return err
	}
	sessions := session.NewManager(i18n.Language(r.cfg.Telegram.DefaultLanguage))
	bot := telegram.New(api, r.cfg.Telegram, r.cfg.Audio, sessions, pipeline, stats,
		r.logger.With(slog.String("component", "telegram")))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", r.handleHealth)
	mux.HandleFunc("/readyz", r.handleReady)
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler)
	}

	addr := fmt.Sprintf("%s:%d", r.cfg.HTTP.Bind, r.cfg.HTTP.Port)
	r.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := bot.Run(ctx); err != nil && err != context.Canceled {
			r.logger.Error("bot stopped", slog.String("error", err.Error()))
			cancel()
		}
	}()

	r.ready.Store(true)
	r.logger.Info("runtime started",
		slog.String("addr", addr),
		slog.String("stt_mode", r.cfg.STT.Mode),
		slog.String("llm_mode", r.cfg.LLM.Mode))

	<-ctx.Done()
	r.ready.Store(false)
	r.logger.Info("runtime stopping")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	r.wg.Wait()

	if r.tracerClose != nil {
		if err := r.tracerClose(shutdownCtx); err != nil {
			r.logger.Error("telemetry shutdown error", slog.String("error", err.Error()))
		}
	}

	return nil
}

func (r *Runtime) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (r *Runtime) handleReady(w http.ResponseWriter, _ *http.Request) {
	if r.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
