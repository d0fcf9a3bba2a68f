package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/voyageapp/voyage-client/internal/app"
	"github.com/voyageapp/voyage-client/internal/buildinfo"
	"github.com/voyageapp/voyage-client/internal/config"
	"github.com/voyageapp/voyage-client/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	a, err := app.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	a.Run(ctx)
}
