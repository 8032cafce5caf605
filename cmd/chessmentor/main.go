package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hbkang/chessmentor/internal/advisor"
	appcfg "github.com/hbkang/chessmentor/internal/config"
	"github.com/hbkang/chessmentor/internal/msgcat"
	"github.com/hbkang/chessmentor/internal/obslog"
	"github.com/hbkang/chessmentor/internal/session"
	"github.com/hbkang/chessmentor/internal/tui"
)

func main() {
	_ = godotenv.Load()

	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	cat, err := msgcat.New(cfg.MsgTemplateDir)
	if err != nil {
		logger.Fatal("message catalog init failed", zap.Error(err))
	}

	ctx := context.Background()
	adv, err := advisor.New(ctx, advisor.Config{
		APIKey:       cfg.GeminiAPIKey,
		Model:        cfg.GeminiModel,
		Temperature:  cfg.AdvisorTemperature,
		HistoryLimit: cfg.AdvisorHistoryLimit,
		Apology:      cat.Text("analysis.apology"),
	}, logger)
	if err != nil {
		logger.Fatal("advisor init failed", zap.Error(err))
	}
	defer func() { _ = adv.Close() }()

	ctrl := session.New(session.Messages{
		Thinking: cat.Text("analysis.thinking"),
		Fallback: cat.Text("analysis.fallback"),
		NoMove:   cat.Text("analysis.no_move"),
		Error:    cat.Text("analysis.error"),
	}, logger)

	ui := tui.New(ctrl, adv, cat, tui.Options{
		Theme:          cfg.Theme,
		MoveDelay:      time.Duration(cfg.AIMoveDelayMillis) * time.Millisecond,
		RequestTimeout: time.Duration(cfg.AdvisorTimeoutSec) * time.Second,
		Logger:         logger,
	})

	logger.Info("chessmentor starting",
		zap.String("model", cfg.GeminiModel),
		zap.String("theme", cfg.Theme),
	)
	if err := ui.Run(); err != nil {
		logger.Fatal("ui terminated", zap.Error(err))
	}
}
