package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type TelemetryConfig struct {
	LogLevel     string `yaml:"log_level"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	OTLPInsecure bool   `yaml:"otlp_insecure"`
}

type HTTPConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type TelegramConfig struct {
	Token           string `yaml:"token"`
	PollTimeoutSec  int    `yaml:"poll_timeout_sec"`
	Debug           bool   `yaml:"debug"`
	MessageLimit    int    `yaml:"message_limit"`
	DefaultLanguage string `yaml:"default_language"`
}

type AudioConfig struct {
	FFmpegCommand     string `yaml:"ffmpeg_command"`
	ConvertTimeoutSec int    `yaml:"convert_timeout_sec"`
	SampleRate        int    `yaml:"sample_rate"`
	Channels          int    `yaml:"channels"`
	MaxDurationSec    int    `yaml:"max_duration_sec"`
}

type STTConfig struct {
	Mode      string `yaml:"mode"` // mock, exec, openai
	Command   string `yaml:"command"`
	ModelPath string `yaml:"model_path"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Language  string `yaml:"language"`
}

type LLMConfig struct {
	Mode        string  `yaml:"mode"` // mock, ollama, openrouter
	Endpoint    string  `yaml:"endpoint"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	TimeoutSec  int     `yaml:"timeout_sec"`
}

type AnalysisConfig struct {
	OptimalWPMMin int `yaml:"optimal_wpm_min"`
	OptimalWPMMax int `yaml:"optimal_wpm_max"`
}

type StatsConfig struct {
	Path          string `yaml:"path"`
	RetentionMode string `yaml:"retention_mode"` // ephemeral, persistent
	RetentionDays int    `yaml:"retention_days"`
	MaxPerChat    int    `yaml:"max_per_chat"`
	VacuumOnStart bool   `yaml:"vacuum_on_start"`
}

type Config struct {
	AppName     string          `yaml:"app_name"`
	Environment string          `yaml:"environment"`
	HTTP        HTTPConfig      `yaml:"http"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
	Telegram    TelegramConfig  `yaml:"telegram"`
	Audio       AudioConfig     `yaml:"audio"`
	STT         STTConfig       `yaml:"stt"`
	LLM         LLMConfig       `yaml:"llm"`
	Analysis    AnalysisConfig  `yaml:"analysis"`
	Stats       StatsConfig     `yaml:"stats"`
}

func Default() Config {
	return Config{
		AppName:     "speechbot",
		Environment: "development",
		HTTP: HTTPConfig{
			Bind: "0.0.0.0",
			Port: 8080,
		},
		Telemetry: TelemetryConfig{
			LogLevel:     "info",
			OTLPEndpoint: "",
			OTLPInsecure: true,
		},
		Telegram: TelegramConfig{
			PollTimeoutSec:  60,
			MessageLimit:    4096,
			DefaultLanguage: "en",
		},
		Audio: AudioConfig{
			FFmpegCommand:     "ffmpeg",
			ConvertTimeoutSec: 60,
			SampleRate:        16000,
			Channels:          1,
			MaxDurationSec:    600,
		},
		STT: STTConfig{
			Mode:  "mock",
			Model: "whisper-1",
		},
		LLM: LLMConfig{
			Mode:        "mock",
			Endpoint:    "http://localhost:11434",
			Model:       "tngtech/tng-r1t-chimera:free",
			MaxTokens:   1500,
			Temperature: 0.7,
			TimeoutSec:  60,
		},
		Analysis: AnalysisConfig{
			OptimalWPMMin: 120,
			OptimalWPMMax: 150,
		},
		Stats: StatsConfig{
			Path:          "./data/speechbot-stats.db",
			RetentionMode: "persistent",
			RetentionDays: 90,
			MaxPerChat:    1000,
		},
	}
}

func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	// Legacy names first so the SPEECHBOT_* variants win when both are set.
	overrideString(&cfg.Telegram.Token, "BOT_TOKEN")
	overrideString(&cfg.LLM.APIKey, "OPENROUTER_API_KEY")

	overrideString(&cfg.AppName, "SPEECHBOT_APP_NAME")
	overrideString(&cfg.Environment, "SPEECHBOT_ENVIRONMENT")
	overrideString(&cfg.HTTP.Bind, "SPEECHBOT_HTTP_BIND")
	overrideInt(&cfg.HTTP.Port, "SPEECHBOT_HTTP_PORT")
	overrideString(&cfg.Telemetry.LogLevel, "SPEECHBOT_TELEMETRY_LOG_LEVEL")
	overrideString(&cfg.Telemetry.OTLPEndpoint, "SPEECHBOT_TELEMETRY_OTLP_ENDPOINT")
	overrideBool(&cfg.Telemetry.OTLPInsecure, "SPEECHBOT_TELEMETRY_OTLP_INSECURE")
	overrideString(&cfg.Telegram.Token, "SPEECHBOT_TELEGRAM_TOKEN")
	overrideInt(&cfg.Telegram.PollTimeoutSec, "SPEECHBOT_TELEGRAM_POLL_TIMEOUT_SEC")
	overrideBool(&cfg.Telegram.Debug, "SPEECHBOT_TELEGRAM_DEBUG")
	overrideInt(&cfg.Telegram.MessageLimit, "SPEECHBOT_TELEGRAM_MESSAGE_LIMIT")
	overrideString(&cfg.Telegram.DefaultLanguage, "SPEECHBOT_TELEGRAM_DEFAULT_LANGUAGE")
	overrideString(&cfg.Audio.FFmpegCommand, "SPEECHBOT_AUDIO_FFMPEG_COMMAND")
	overrideInt(&cfg.Audio.ConvertTimeoutSec, "SPEECHBOT_AUDIO_CONVERT_TIMEOUT_SEC")
	overrideInt(&cfg.Audio.SampleRate, "SPEECHBOT_AUDIO_SAMPLE_RATE")
	overrideInt(&cfg.Audio.Channels, "SPEECHBOT_AUDIO_CHANNELS")
	overrideInt(&cfg.Audio.MaxDurationSec, "SPEECHBOT_AUDIO_MAX_DURATION_SEC")
	overrideString(&cfg.STT.Mode, "SPEECHBOT_STT_MODE")
	overrideString(&cfg.STT.Command, "SPEECHBOT_STT_COMMAND")
	overrideString(&cfg.STT.ModelPath, "SPEECHBOT_STT_MODEL_PATH")
	overrideString(&cfg.STT.Model, "SPEECHBOT_STT_MODEL")
	overrideString(&cfg.STT.APIKey, "SPEECHBOT_STT_API_KEY")
	overrideString(&cfg.STT.BaseURL, "SPEECHBOT_STT_BASE_URL")
	overrideString(&cfg.STT.Language, "SPEECHBOT_STT_LANGUAGE")
	overrideString(&cfg.LLM.Mode, "SPEECHBOT_LLM_MODE")
	overrideString(&cfg.LLM.Endpoint, "SPEECHBOT_LLM_ENDPOINT")
	overrideString(&cfg.LLM.APIKey, "SPEECHBOT_LLM_API_KEY")
	overrideString(&cfg.LLM.Model, "SPEECHBOT_LLM_MODEL")
	overrideInt(&cfg.LLM.MaxTokens, "SPEECHBOT_LLM_MAX_TOKENS")
	overrideFloat(&cfg.LLM.Temperature, "SPEECHBOT_LLM_TEMPERATURE")
	overrideInt(&cfg.LLM.TimeoutSec, "SPEECHBOT_LLM_TIMEOUT_SEC")
	overrideInt(&cfg.Analysis.OptimalWPMMin, "SPEECHBOT_ANALYSIS_OPTIMAL_WPM_MIN")
	overrideInt(&cfg.Analysis.OptimalWPMMax, "SPEECHBOT_ANALYSIS_OPTIMAL_WPM_MAX")
	overrideString(&cfg.Stats.Path, "SPEECHBOT_STATS_PATH")
	overrideString(&cfg.Stats.RetentionMode, "SPEECHBOT_STATS_RETENTION_MODE")
	overrideInt(&cfg.Stats.RetentionDays, "SPEECHBOT_STATS_RETENTION_DAYS")
	overrideInt(&cfg.Stats.MaxPerChat, "SPEECHBOT_STATS_MAX_PER_CHAT")
	overrideBool(&cfg.Stats.VacuumOnStart, "SPEECHBOT_STATS_VACUUM_ON_START")
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func overrideFloat(target *float64, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			*target = parsed
		}
	}
}

func validate(cfg Config) error {
	if cfg.AppName == "" {
		return errors.New("app_name must not be empty")
	}
	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return errors.New("http.port must be between 1 and 65535")
	}
	if cfg.Telegram.Token == "" {
		return errors.New("telegram.token must be set (config, BOT_TOKEN or SPEECHBOT_TELEGRAM_TOKEN)")
	}
	if cfg.Telegram.PollTimeoutSec <= 0 {
		return errors.New("telegram.poll_timeout_sec must be positive")
	}
	if cfg.Telegram.MessageLimit <= 0 {
		return errors.New("telegram.message_limit must be positive")
	}
	switch cfg.Telegram.DefaultLanguage {
	case "en", "ru":
	default:
		return errors.New("telegram.default_language must be one of en|ru")
	}
	if cfg.Audio.FFmpegCommand == "" {
		return errors.New("audio.ffmpeg_command must not be empty")
	}
	if cfg.Audio.ConvertTimeoutSec <= 0 {
		return errors.New("audio.convert_timeout_sec must be positive")
	}
	if cfg.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	if cfg.Audio.Channels <= 0 {
		return errors.New("audio.channels must be positive")
	}
	switch cfg.STT.Mode {
	case "mock", "exec", "openai":
	default:
		return errors.New("stt.mode must be one of mock|exec|openai")
	}
	if cfg.STT.Mode == "exec" && cfg.STT.Command == "" {
		return errors.New("stt.command must be set when mode=exec")
	}
	if cfg.STT.Mode == "openai" && cfg.STT.APIKey == "" {
		return errors.New("stt.api_key must be set when mode=openai")
	}
	switch cfg.LLM.Mode {
	case "mock", "ollama", "openrouter":
	default:
		return errors.New("llm.mode must be one of mock|ollama|openrouter")
	}
	if cfg.LLM.Mode == "ollama" && cfg.LLM.Endpoint == "" {
		return errors.New("llm.endpoint must be set when mode=ollama")
	}
	if cfg.LLM.Mode == "openrouter" && cfg.LLM.APIKey == "" {
		return errors.New("llm.api_key must be set when mode=openrouter (or OPENROUTER_API_KEY)")
	}
	if cfg.LLM.MaxTokens < 0 {
		return errors.New("llm.max_tokens must be >= 0")
	}
	if cfg.LLM.TimeoutSec <= 0 {
		return errors.New("llm.timeout_sec must be positive")
	}
	if cfg.Analysis.OptimalWPMMin <= 0 || cfg.Analysis.OptimalWPMMax <= cfg.Analysis.OptimalWPMMin {
		return errors.New("analysis.optimal_wpm_max must be greater than optimal_wpm_min")
	}
	switch cfg.Stats.RetentionMode {
	case "ephemeral", "persistent":
	default:
		return errors.New("stats.retention_mode must be one of ephemeral|persistent")
	}
	if cfg.Stats.RetentionMode == "persistent" && cfg.Stats.Path == "" {
		return errors.New("stats.path must not be empty when retention is persistent")
	}
	if cfg.Stats.RetentionDays < 0 {
		return errors.New("stats.retention_days must be >= 0")
	}
	return nil
}
