package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AmirMakir/speechbot/internal/i18n"
	"github.com/AmirMakir/speechbot/internal/session"
)

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lang := b.sessions.Language(chatID)

	switch msg.Command() {
	case "start":
		b.sessions.Start(chatID)
		reply := tgbotapi.NewMessage(chatID, i18n.T(lang, "welcome"))
		reply.ParseMode = tgbotapi.ModeHTML
		reply.ReplyMarkup = languageKeyboard()
		b.send(reply)
	case "help":
		b.sendHTML(chatID, i18n.T(lang, "help_text"))
	case "stats":
		b.sendHTML(chatID, b.renderStats(ctx, chatID, lang))
	case "tips":
		b.sendHTML(chatID, i18n.T(lang, "tips_title")+i18n.T(lang, "tips_content"))
	case "settings":
		reply := tgbotapi.NewMessage(chatID, i18n.T(lang, "settings_title"))
		reply.ParseMode = tgbotapi.ModeHTML
		reply.ReplyMarkup = settingsKeyboard(lang)
		b.send(reply)
	case "about":
		b.sendHTML(chatID, i18n.T(lang, "about_text"))
	default:
		b.sendHTML(chatID, i18n.T(lang, "help_text"))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Warn("callback ack failed", slog.String("error", err.Error()))
	}

	switch cb.Data {
	case cbLangEN, cbLangRU:
		code := strings.TrimPrefix(cb.Data, "lang_")
		if !b.sessions.SetLanguage(chatID, code) {
			return
		}
		lang := b.sessions.Language(chatID)
		b.editHTML(chatID, cb.Message.MessageID, i18n.T(lang, "language_selected"))
		onboarding := tgbotapi.NewMessage(chatID, i18n.T(lang, "onboarding"))
		onboarding.ParseMode = tgbotapi.ModeHTML
		onboarding.ReplyMarkup = mainMenuKeyboard(lang)
		b.send(onboarding)
	case cbChangeLang:
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID,
			i18n.T(b.sessions.Language(chatID), "choose_language"), languageKeyboard())
		edit.ParseMode = tgbotapi.ModeHTML
		if _, err := b.api.Request(edit); err != nil {
			b.log.Warn("telegram edit failed", slog.String("error", err.Error()))
		}
	case cbBackToMenu:
		b.editHTML(chatID, cb.Message.MessageID, i18n.T(b.sessions.Language(chatID), "main_menu"))
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	lang := b.sessions.Language(chatID)

	if s := b.sessions.Get(chatID); s != nil && s.State == session.AwaitingLanguage {
		reply := tgbotapi.NewMessage(chatID, i18n.T(lang, "choose_language"))
		reply.ParseMode = tgbotapi.ModeHTML
		reply.ReplyMarkup = languageKeyboard()
		b.send(reply)
		return
	}

	switch buttonAction(msg.Text) {
	case actionSendAudio:
		b.sendHTML(chatID, i18n.T(lang, "send_audio_prompt"))
	case actionStats:
		b.sendHTML(chatID, b.renderStats(ctx, chatID, lang))
	case actionTips:
		b.sendHTML(chatID, i18n.T(lang, "tips_title")+i18n.T(lang, "tips_content"))
	case actionSettings:
		reply := tgbotapi.NewMessage(chatID, i18n.T(lang, "settings_title"))
		reply.ParseMode = tgbotapi.ModeHTML
		reply.ReplyMarkup = settingsKeyboard(lang)
		b.send(reply)
	case actionHelp:
		b.sendHTML(chatID, i18n.T(lang, "help_text"))
	default:
		b.sendHTML(chatID, i18n.T(lang, "main_menu"))
	}
}

func (b *Bot) renderStats(ctx context.Context, chatID int64, lang i18n.Language) string {
	sum, err := b.stats.ChatSummary(ctx, chatID, 5)
	if err != nil {
		b.log.Warn("stats summary failed", slog.String("error", err.Error()))
		return i18n.T(lang, "stats_empty")
	}
	if sum.Total == 0 {
		return i18n.T(lang, "stats_title") + i18n.T(lang, "stats_empty")
	}

	var sb strings.Builder
	sb.WriteString(i18n.T(lang, "stats_title"))
	sb.WriteString(i18n.F(lang, "total_analyses", sum.Total))
	sb.WriteString("\n")
	sb.WriteString(i18n.F(lang, "avg_wpm", sum.AvgWPM))
	sb.WriteString("\n")
	sb.WriteString(i18n.F(lang, "avg_fillers", sum.AvgFillers))
	sb.WriteString("\n")
	if !sum.LastAt.IsZero() {
		sb.WriteString(i18n.F(lang, "last_analysis", sum.LastAt.Format("2006-01-02 15:04")))
		sb.WriteString("\n")
	}
	if len(sum.RecentWPM) > 0 {
		sb.WriteString("\n")
		sb.WriteString(i18n.T(lang, "recent_progress"))
		sb.WriteString("\n")
		for i, wpm := range sum.RecentWPM {
			fmt.Fprintf(&sb, "%d. %.1f wpm\n", i+1, wpm)
		}
	}
	return sb.String()
}
