package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	GeminiAPIKey string
	GeminiModel  string

	AdvisorTemperature  float32
	AdvisorHistoryLimit int
	AdvisorTimeoutSec   int

	AIMoveDelayMillis int

	MsgTemplateDir string
	Theme          string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		GeminiModel:         "gemini-2.0-flash",
		AdvisorTemperature:  0.4,
		AdvisorHistoryLimit: 10,
		AdvisorTimeoutSec:   60,
		AIMoveDelayMillis:   600,
		Theme:               "basic",
	}

	cfg.GeminiAPIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if v := strings.TrimSpace(os.Getenv("GEMINI_MODEL")); v != "" {
		cfg.GeminiModel = v
	}

	if v := strings.TrimSpace(os.Getenv("ADVISOR_TEMPERATURE")); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 && f <= 2 {
			cfg.AdvisorTemperature = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv("ADVISOR_HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorHistoryLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ADVISOR_TIMEOUT")); v != "" { // seconds
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AdvisorTimeoutSec = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("AI_MOVE_DELAY_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.AIMoveDelayMillis = n
		}
	}

	cfg.MsgTemplateDir = strings.TrimSpace(os.Getenv("MSG_TEMPLATE_DIR"))
	if v := strings.TrimSpace(os.Getenv("THEME")); v != "" {
		cfg.Theme = v
	}

	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}

	return cfg, nil
}
