// Package telegram is the bot transport: long polling, command routing,
// keyboards, and the audio submission flow.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AmirMakir/speechbot/internal/coach"
	"github.com/AmirMakir/speechbot/internal/config"
	"github.com/AmirMakir/speechbot/internal/session"
	"github.com/AmirMakir/speechbot/internal/statstore"
)

// API is the slice of the bot client the transport uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Pipeline runs one analysis cycle over a downloaded audio file.
type Pipeline interface {
	ProcessFile(ctx context.Context, sourcePath string, notify coach.Notify) (*coach.Result, error)
}

// Recorder persists analysis history.
type Recorder interface {
	Append(ctx context.Context, rec statstore.Record) error
	ChatSummary(ctx context.Context, chatID int64, recentLimit int) (statstore.Summary, error)
}

// Bot wires the Telegram update stream to the coaching pipeline.
type Bot struct {
	api      API
	cfg      config.TelegramConfig
	audioCfg config.AudioConfig
	sessions *session.Manager
	pipeline Pipeline
	stats    Recorder
	log      *slog.Logger
	download *http.Client

	wg sync.WaitGroup
}

func New(api API, cfg config.TelegramConfig, audioCfg config.AudioConfig, sessions *session.Manager, pipeline Pipeline, stats Recorder, log *slog.Logger) *Bot {
	return &Bot{
		api:      api,
		cfg:      cfg,
		audioCfg: audioCfg,
		sessions: sessions,
		pipeline: pipeline,
		stats:    stats,
		log:      log,
		download: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Connect creates the underlying client from config.
func Connect(cfg config.TelegramConfig) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram connect: %w", err)
	}
	api.Debug = cfg.Debug
	return api, nil
}

// Run polls for updates until ctx is cancelled, then waits for in-flight
// audio handlers to drain.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeoutSec
	updates := b.api.GetUpdatesChan(u)

	b.log.Info("telegram bot polling", slog.Int("timeout_sec", b.cfg.PollTimeoutSec))
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message == nil:
		return
	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case isLikelyAudio(update.Message):
		b.wg.Add(1)
		go func(msg *tgbotapi.Message) {
			defer b.wg.Done()
			b.handleAudio(ctx, msg)
		}(update.Message)
	default:
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Warn("telegram send failed", slog.String("error", err.Error()))
	}
}

func (b *Bot) sendHTML(chatID int64, text string) {
	for _, part := range SplitMessage(text, b.cfg.MessageLimit) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = tgbotapi.ModeHTML
		b.send(msg)
	}
}

func (b *Bot) editHTML(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Request(edit); err != nil {
		b.log.Warn("telegram edit failed", slog.String("error", err.Error()))
	}
}
