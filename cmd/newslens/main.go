package main

import (
	"context"
	"os"
	"strings"

	"newslens/internal/app"
	"newslens/internal/config"
	"newslens/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	rawQuery := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if rawQuery == "" {
		logger.Error("usage: newslens <query>")
		os.Exit(2)
	}

	application := app.New(cfg, logger)

	if err := application.Run(ctx, rawQuery); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}
