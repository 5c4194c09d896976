package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/prizoapp/prizo-cli/internal/client/cli"
	"github.com/prizoapp/prizo-cli/internal/client/config"
	"github.com/prizoapp/prizo-cli/internal/logging"
)

func main() {

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Println("warning: stdin is not a terminal, interactive prompts may misbehave")
	}

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
