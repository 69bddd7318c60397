// Package i18n provides the bilingual interface catalogue.
package i18n

import "fmt"

// Language represents an interface language.
type Language string

const (
	EN Language = "en"
	RU Language = "ru"
)

// Supported reports whether code names a known interface language.
func Supported(code string) bool {
	switch Language(code) {
	case EN, RU:
		return true
	}
	return false
}

// T returns the translation for key, falling back to English.
func T(lang Language, key string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := translations[EN][key]; ok {
		return s
	}
	return key
}

// F formats the translation for key with args.
func F(lang Language, key string, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

var translations = map[Language]map[string]string{
	RU: {
		"welcome": `🎤 <b>Добро пожаловать в Speech Analyzer Bot!</b>

Я помогу вам улучшить навыки публичных выступлений и речи.

<b>Что я умею:</b>
✅ Анализировать темп и ритм речи
✅ Находить слова-паразиты
✅ Оценивать выразительность и интонацию
✅ Давать персональные рекомендации
✅ Отслеживать ваш прогресс

<b>Выберите язык интерфейса:</b>`,
		"language_selected": "✅ <b>Язык интерфейса: Русский</b>\n\nИспользуйте меню для навигации 👇",
		"main_menu":         "📋 <b>Главное меню</b>\n\nВыберите действие:",
		"choose_language":   "🌍 <b>Choose language / Выберите язык:</b>",
		"onboarding": `🎯 <b>Как начать:</b>

1️⃣ Нажмите кнопку <b>🎙 Отправить аудио</b> внизу
2️⃣ Или просто запишите голосовое сообщение
3️⃣ Получите детальный анализ вашей речи

💡 <b>Совет:</b> Говорите естественно, как обычно. Я проанализирую темп, паузы, слова-паразиты и дам рекомендации!

📱 Используйте меню внизу для навигации или команды:
/help - Подробная справка
/stats - Ваша статистика
/tips - Советы по ораторству`,
		"help_text": `ℹ️ <b>Справка</b>

<b>Как использовать бота:</b>

1️⃣ Запишите голосовое сообщение или загрузите аудио
2️⃣ Отправьте мне его
3️⃣ Получите детальный анализ с рекомендациями

<b>Доступные команды:</b>
/start - Начать работу с ботом
/help - Показать эту справку
/stats - Посмотреть вашу статистику
/tips - Получить советы по ораторскому искусству
/settings - Настройки бота
/about - О боте и разработчике

<b>Форматы аудио:</b>
• Голосовые сообщения Telegram
• Audio файлы (MP3, OGG, WAV, M4A)
• Максимальная длительность: 10 минут

<b>Языки анализа:</b>
Русский 🇷🇺 и English 🇬🇧`,
		"stats_title":     "📊 <b>Ваша статистика</b>\n\n",
		"stats_empty":     "У вас пока нет анализов. Отправьте голосовое сообщение для начала!",
		"total_analyses":  "📈 Всего анализов: %d",
		"avg_wpm":         "⚡️ Средний темп: %.1f слов/мин",
		"avg_fillers":     "🎯 Среднее количество паразитов: %.1f",
		"last_analysis":   "🕐 Последний анализ: %s",
		"recent_progress": "<b>📈 Недавний прогресс:</b>",
		"tips_title":      "💡 <b>Советы по ораторскому искусству</b>\n\n",
		"tips_content": `<b>1. Контроль темпа речи</b>
• Оптимальный темп: 120-150 слов/мин
• Делайте паузы между мыслями
• Варьируйте скорость для акцентов

<b>2. Работа с паузами</b>
• Используйте паузы вместо слов-паразитов
• Пауза 2-3 секунды = время для обдумывания
• Пауза создает драматический эффект

<b>3. Избавление от слов-паразитов</b>
• Осознайте свои "любимые" паразиты
• Заменяйте их паузами
• Практикуйтесь ежедневно

<b>4. Выразительность</b>
• Меняйте высоту голоса
• Используйте эмоции в речи
• Подчеркивайте важные слова

<b>5. Практика</b>
• Записывайте себя каждый день
• Анализируйте результаты
• Отслеживайте прогресс

<i>Используйте /stats чтобы видеть ваш прогресс!</i>`,
		"settings_title": "⚙️ <b>Настройки</b>\n\nВыберите параметр для изменения:",
		"about_text": `ℹ️ <b>О Speech Analyzer Bot</b>

<b>Распознавание:</b> Whisper
<b>AI Анализ:</b> настраиваемая LLM

<b>Технологии:</b>
• Speech Recognition
• Audio Processing
• Natural Language Processing

💝 Если бот помог вам, расскажите о нем друзьям!`,
		"processing":        "🎧 <b>Обрабатываю аудио...</b>\n\nЭто займет несколько секунд ⏳",
		"converting":        "🔄 <b>Конвертирую аудио...</b>",
		"recognizing":       "🎙 <b>Распознаю речь...</b>",
		"analyzing":         "📊 <b>Анализирую речь...</b>\n\nПроверяю темп, паузы и выразительность 🔍",
		"generating":        "🤖 <b>Генерирую персональные рекомендации...</b>\n\nПочти готово! ✨",
		"err_input":         "❌ <b>Не удалось обработать файл.</b>\n\nОтправьте голосовое сообщение или аудиофайл (MP3, OGG, WAV, M4A).",
		"err_transcribe":    "❌ <b>Не удалось распознать речь.</b>\n\nПопробуйте ещё раз чуть позже.",
		"err_analyze":       "❌ <b>Не удалось проанализировать аудио.</b>\n\nПопробуйте отправить другую запись.",
		"err_timeout":       "❌ <b>Ошибка:</b> Превышено время обработки аудио\n\nПопробуйте отправить более короткий файл.",
		"err_too_long":      "❌ <b>Запись слишком длинная.</b>\n\nОтправьте файл короче, и я его проанализирую.",
		"no_recommendation": "<i>Рекомендации временно недоступны. Ниже только метрики.</i>",
		"analysis_title":    "🎤 <b>РЕЗУЛЬТАТЫ АНАЛИЗА</b>",
		"basic_metrics":     "\n📊 <b>Базовые метрики:</b>",
		"speech_quality":    "\n🗣 <b>Качество речи:</b>",
		"transcription":     "\n📄 <b>Полная транскрипция:</b>",
		"recommendations":   "\n\n💡 <b>РЕКОМЕНДАЦИИ ДЛЯ УЛУЧШЕНИЯ:</b>\n",
		"analysis_complete": "✅ <b>Анализ завершен!</b>\n\nВаш анализ #%d\n\nПродолжайте практиковаться для достижения лучших результатов! 💪",
		"send_audio_prompt": "🎤 <b>Готов к анализу!</b>\n\nОтправьте голосовое сообщение или аудиофайл.",
		"btn_send_audio":    "🎙 Отправить аудио",
		"btn_stats":         "📊 Моя статистика",
		"btn_tips":          "💡 Советы",
		"btn_settings":      "⚙️ Настройки",
		"btn_help":          "❓ Помощь",
		"btn_change_lang":   "🌍 Изменить язык",
		"btn_back":          "◀️ Назад",

		"tempo_optimal":      "оптимальный",
		"tempo_slow":         "слишком медленный",
		"tempo_fast":         "слишком быстрый",
		"monotony_low":       "очень низкая (живое звучание)",
		"monotony_moderate":  "умеренная",
		"monotony_high":      "высокая (монотонно)",
		"dynamics_strong":    "ярко выраженная динамика",
		"dynamics_medium":    "средняя динамика",
		"dynamics_flat":      "плоская (почти нет изменений громкости)",
		"fillers_none":       "  (не обнаружено)",
		"filler_occurrences": "раз",
	},
	EN: {
		"welcome": `🎤 <b>Welcome to Speech Analyzer Bot!</b>

I will help you improve your public speaking and speech skills.

<b>What I can do:</b>
✅ Analyze speech tempo and rhythm
✅ Find filler words
✅ Evaluate expressiveness and intonation
✅ Give personalized recommendations
✅ Track your progress

<b>Choose your interface language:</b>`,
		"language_selected": "✅ <b>Interface language: English</b>\n\nUse the menu for navigation 👇",
		"main_menu":         "📋 <b>Main Menu</b>\n\nChoose an action:",
		"choose_language":   "🌍 <b>Choose language / Выберите язык:</b>",
		"onboarding": `🎯 <b>How to start:</b>

1️⃣ Press the <b>🎙 Send Audio</b> button below
2️⃣ Or just record a voice message
3️⃣ Get detailed analysis of your speech

💡 <b>Tip:</b> Speak naturally, as you normally do. I'll analyze tempo, pauses, filler words and give recommendations!

📱 Use the menu below for navigation or commands:
/help - Detailed help
/stats - Your statistics
/tips - Speaking tips`,
		"help_text": `ℹ️ <b>Help</b>

<b>How to use the bot:</b>

1️⃣ Record a voice message or upload audio
2️⃣ Send it to me
3️⃣ Get detailed analysis with recommendations

<b>Available commands:</b>
/start - Start working with the bot
/help - Show this help
/stats - View your statistics
/tips - Get public speaking tips
/settings - Bot settings
/about - About the bot and developer

<b>Audio formats:</b>
• Telegram voice messages
• Audio files (MP3, OGG, WAV, M4A)
• Maximum duration: 10 minutes

<b>Analysis languages:</b>
Russian 🇷🇺 and English 🇬🇧`,
		"stats_title":     "📊 <b>Your Statistics</b>\n\n",
		"stats_empty":     "You have no analyses yet. Send a voice message to get started!",
		"total_analyses":  "📈 Total analyses: %d",
		"avg_wpm":         "⚡️ Average tempo: %.1f words/min",
		"avg_fillers":     "🎯 Average filler words: %.1f",
		"last_analysis":   "🕐 Last analysis: %s",
		"recent_progress": "<b>📈 Recent Progress:</b>",
		"tips_title":      "💡 <b>Public Speaking Tips</b>\n\n",
		"tips_content": `<b>1. Speech Tempo Control</b>
• Optimal tempo: 120-150 words/min
• Make pauses between thoughts
• Vary speed for emphasis

<b>2. Working with Pauses</b>
• Use pauses instead of filler words
• 2-3 second pause = thinking time
• Pause creates dramatic effect

<b>3. Eliminating Filler Words</b>
• Recognize your "favorite" fillers
• Replace them with pauses
• Practice daily

<b>4. Expressiveness</b>
• Change voice pitch
• Use emotions in speech
• Emphasize important words

<b>5. Practice</b>
• Record yourself every day
• Analyze results
• Track progress

<i>Use /stats to see your progress!</i>`,
		"settings_title": "⚙️ <b>Settings</b>\n\nChoose a parameter to change:",
		"about_text": `ℹ️ <b>About Speech Analyzer Bot</b>

<b>Recognition:</b> Whisper
<b>AI Analysis:</b> configurable LLM

<b>Technologies:</b>
• Speech Recognition
• Audio Processing
• Natural Language Processing

💝 If the bot helped you, tell your friends!`,
		"processing":        "🎧 <b>Processing audio...</b>\n\nThis will take a few seconds ⏳",
		"converting":        "🔄 <b>Converting audio...</b>",
		"recognizing":       "🎙 <b>Recognizing speech...</b>",
		"analyzing":         "📊 <b>Analyzing speech...</b>\n\nChecking tempo, pauses and expressiveness 🔍",
		"generating":        "🤖 <b>Generating personalized recommendations...</b>\n\nAlmost ready! ✨",
		"err_input":         "❌ <b>Could not process the file.</b>\n\nSend a voice message or an audio file (MP3, OGG, WAV, M4A).",
		"err_transcribe":    "❌ <b>Speech recognition failed.</b>\n\nPlease try again a bit later.",
		"err_analyze":       "❌ <b>Audio analysis failed.</b>\n\nTry sending a different recording.",
		"err_timeout":       "❌ <b>Error:</b> Audio processing timeout exceeded\n\nTry sending a shorter file.",
		"err_too_long":      "❌ <b>The recording is too long.</b>\n\nSend a shorter file and I will analyze it.",
		"no_recommendation": "<i>Recommendations are temporarily unavailable. Metrics only below.</i>",
		"analysis_title":    "🎤 <b>ANALYSIS RESULTS</b>",
		"basic_metrics":     "\n📊 <b>Basic metrics:</b>",
		"speech_quality":    "\n🗣 <b>Speech quality:</b>",
		"transcription":     "\n📄 <b>Full transcription:</b>",
		"recommendations":   "\n\n💡 <b>RECOMMENDATIONS FOR IMPROVEMENT:</b>\n",
		"analysis_complete": "✅ <b>Analysis complete!</b>\n\nYour analysis #%d\n\nKeep practicing for better results! 💪",
		"send_audio_prompt": "🎤 <b>Ready to analyze!</b>\n\nPlease send a voice message or audio file.",
		"btn_send_audio":    "🎙 Send Audio",
		"btn_stats":         "📊 My Stats",
		"btn_tips":          "💡 Tips",
		"btn_settings":      "⚙️ Settings",
		"btn_help":          "❓ Help",
		"btn_change_lang":   "🌍 Change Language",
		"btn_back":          "◀️ Back",

		"tempo_optimal":      "optimal",
		"tempo_slow":         "too slow",
		"tempo_fast":         "too fast",
		"monotony_low":       "very low (lively sound)",
		"monotony_moderate":  "moderate",
		"monotony_high":      "high (monotonous)",
		"dynamics_strong":    "pronounced dynamics",
		"dynamics_medium":    "medium dynamics",
		"dynamics_flat":      "flat (almost no volume changes)",
		"fillers_none":       "  (none detected)",
		"filler_occurrences": "times",
	},
}
