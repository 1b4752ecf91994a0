// Command admin inspects and resets the persisted dashboard snapshot.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/oksasatya/inclusive-studai/config"
	"github.com/oksasatya/inclusive-studai/internal/container"
	"github.com/oksasatya/inclusive-studai/internal/domain/repository"
	"github.com/oksasatya/inclusive-studai/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present
	cfg := config.Load()
	logger := helpers.NewLoggerTo(os.Stderr, cfg.AppName, cfg.Env)

	open := func(ctx context.Context) (repository.KeyValueSlot, func(), error) {
		return container.OpenSlot(ctx, cfg, redisFor(cfg), logger)
	}
	root := newRootCmd(open, cfg.StorageKey, logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
