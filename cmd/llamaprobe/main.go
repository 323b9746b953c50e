package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kitbuilder587/llama-probe/internal/config"
	"github.com/kitbuilder587/llama-probe/internal/llm/llamacpp"
	"github.com/kitbuilder587/llama-probe/internal/metrics"
	"github.com/kitbuilder587/llama-probe/internal/probe"
)

func main() {
	os.Exit(run())
}

func run() int {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return probe.ExitFailure
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		return probe.ExitFailure
	}
	defer logger.Sync()

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to load .env", zap.Error(envErr))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := llamacpp.New(llamacpp.Config{
		BaseURL:  cfg.Llama.BaseURL,
		Endpoint: cfg.Llama.Endpoint,
		Timeout:  cfg.Llama.Timeout,
	}, logger)

	m := metrics.New()
	p := probe.New(client, probe.Config{
		URL:     client.URL(),
		Request: cfg.Request,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}, m, logger)

	code := p.Run(ctx)

	if cfg.Metrics.TextfilePath != "" {
		if err := m.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
			logger.Error("failed to write metrics textfile",
				zap.String("path", cfg.Metrics.TextfilePath),
				zap.Error(err),
			)
		}
	}

	return code
}
