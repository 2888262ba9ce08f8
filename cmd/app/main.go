package main

import (
	"context"

	"haunters/config"
	"haunters/di"
	"haunters/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.Scheduler.Start(ctx)
	defer app.Scheduler.Stop()

	app.HTTP.Serve()
}
