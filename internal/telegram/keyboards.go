package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/AmirMakir/speechbot/internal/i18n"
)

// Callback payloads.
const (
	cbLangEN     = "lang_en"
	cbLangRU     = "lang_ru"
	cbChangeLang = "change_lang"
	cbBackToMenu = "back_to_menu"
)

func languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", cbLangRU),
			tgbotapi.NewInlineKeyboardButtonData("🇬🇧 English", cbLangEN),
		),
	)
}

func settingsKeyboard(lang i18n.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_change_lang"), cbChangeLang),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, "btn_back"), cbBackToMenu),
		),
	)
}

func mainMenuKeyboard(lang i18n.Language) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_send_audio")),
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_stats")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_tips")),
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_settings")),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(i18n.T(lang, "btn_help")),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// Menu button actions, matched across both catalogues so a stale keyboard
// keeps working after a language switch.
type menuAction int

const (
	actionNone menuAction = iota
	actionSendAudio
	actionStats
	actionTips
	actionSettings
	actionHelp
)

var buttonKeys = map[string]menuAction{
	"btn_send_audio": actionSendAudio,
	"btn_stats":      actionStats,
	"btn_tips":       actionTips,
	"btn_settings":   actionSettings,
	"btn_help":       actionHelp,
}

func buttonAction(text string) menuAction {
	for key, action := range buttonKeys {
		for _, lang := range []i18n.Language{i18n.EN, i18n.RU} {
			if i18n.T(lang, key) == text {
				return action
			}
		}
	}
	return actionNone
}
