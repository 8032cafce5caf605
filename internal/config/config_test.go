package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("ADVISOR_TEMPERATURE", "")
	t.Setenv("ADVISOR_HISTORY_LIMIT", "")
	t.Setenv("ADVISOR_TIMEOUT", "")
	t.Setenv("AI_MOVE_DELAY_MS", "")
	t.Setenv("THEME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Fatalf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Fatalf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.AdvisorHistoryLimit != 10 || cfg.AdvisorTimeoutSec != 60 {
		t.Fatalf("advisor defaults = %+v", cfg)
	}
	if cfg.AIMoveDelayMillis != 600 || cfg.Theme != "basic" {
		t.Fatalf("ui defaults = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("ADVISOR_TEMPERATURE", "0.9")
	t.Setenv("ADVISOR_HISTORY_LIMIT", "20")
	t.Setenv("ADVISOR_TIMEOUT", "15")
	t.Setenv("AI_MOVE_DELAY_MS", "0")
	t.Setenv("THEME", "midnight")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" || cfg.AdvisorHistoryLimit != 20 {
		t.Fatalf("overrides lost: %+v", cfg)
	}
	if cfg.AdvisorTemperature != 0.9 {
		t.Fatalf("AdvisorTemperature = %v", cfg.AdvisorTemperature)
	}
	if cfg.AIMoveDelayMillis != 0 {
		t.Fatalf("AIMoveDelayMillis = %d, want explicit 0", cfg.AIMoveDelayMillis)
	}
	if cfg.Theme != "midnight" {
		t.Fatalf("Theme = %q", cfg.Theme)
	}
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("ADVISOR_TEMPERATURE", "5.0")
	t.Setenv("ADVISOR_HISTORY_LIMIT", "-3")
	t.Setenv("ADVISOR_TIMEOUT", "abc")
	t.Setenv("AI_MOVE_DELAY_MS", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("THEME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdvisorTemperature != 0.4 || cfg.AdvisorHistoryLimit != 10 || cfg.AdvisorTimeoutSec != 60 {
		t.Fatalf("invalid values should fall back to defaults: %+v", cfg)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "   ")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
