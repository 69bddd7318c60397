package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AmirMakir/speechbot/internal/audio"
	"github.com/AmirMakir/speechbot/internal/coach"
	"github.com/AmirMakir/speechbot/internal/i18n"
	"github.com/AmirMakir/speechbot/internal/statstore"
)

func (b *Bot) handleAudio(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lang := b.sessions.Language(chatID)

	if d := audioDuration(msg); b.audioCfg.MaxDurationSec > 0 && d > b.audioCfg.MaxDurationSec {
		b.sendHTML(chatID, i18n.T(lang, "err_too_long"))
		return
	}

	status := tgbotapi.NewMessage(chatID, i18n.T(lang, "processing"))
	status.ParseMode = tgbotapi.ModeHTML
	sent, err := b.api.Send(status)
	if err != nil {
		b.log.Warn("status message failed", slog.String("error", err.Error()))
		return
	}
	statusID := sent.MessageID

	sub, err := b.downloadAudio(ctx, msg)
	if err != nil {
		b.log.Warn("audio download failed",
			slog.Int64("chat_id", chatID),
			slog.String("error", err.Error()))
		b.editHTML(chatID, statusID, i18n.T(lang, "err_input"))
		return
	}
	defer sub.Cleanup()

	res, err := b.pipeline.ProcessFile(ctx, sub.SourcePath, func(key string) {
		b.editHTML(chatID, statusID, i18n.T(lang, key))
	})
	if err != nil {
		b.log.Warn("pipeline failed",
			slog.Int64("chat_id", chatID),
			slog.String("stage", string(coach.StageOf(err))),
			slog.String("error", err.Error()))
		b.editHTML(chatID, statusID, i18n.T(lang, errorKey(err)))
		return
	}

	if err := b.stats.Append(ctx, statstore.Record{
		ChatID:      chatID,
		WPM:         res.Report.WordsPerMinute,
		Fillers:     res.Report.FillerCount,
		DurationSec: res.Report.DurationSec,
	}); err != nil {
		b.log.Warn("stats append failed", slog.String("error", err.Error()))
	}

	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, statusID)); err != nil {
		b.log.Warn("status delete failed", slog.String("error", err.Error()))
	}

	b.sendHTML(chatID, coach.FormatReport(lang, res.Transcript, res.Report, res.Recommendation, res.Degraded))

	total := 1
	if sum, err := b.stats.ChatSummary(ctx, chatID, 1); err == nil && sum.Total > 0 {
		total = sum.Total
	}
	b.sendHTML(chatID, i18n.F(lang, "analysis_complete", total))
}

func (b *Bot) downloadAudio(ctx context.Context, msg *tgbotapi.Message) (*audio.Submission, error) {
	fileID := audioFileID(msg)
	if fileID == "" {
		return nil, errors.New("message carries no audio payload")
	}

	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.download.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download audio: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download audio: status %s", resp.Status)
	}

	sub, f, err := audio.NewSubmission()
	if err != nil {
		return nil, err
	}
	if err := sub.WriteTo(f, resp.Body); err != nil {
		sub.Cleanup()
		return nil, err
	}
	return sub, nil
}

func audioFileID(msg *tgbotapi.Message) string {
	switch {
	case msg.Voice != nil:
		return msg.Voice.FileID
	case msg.Audio != nil:
		return msg.Audio.FileID
	case msg.Document != nil:
		return msg.Document.FileID
	}
	return ""
}

func audioDuration(msg *tgbotapi.Message) int {
	switch {
	case msg.Voice != nil:
		return msg.Voice.Duration
	case msg.Audio != nil:
		return msg.Audio.Duration
	}
	return 0
}
