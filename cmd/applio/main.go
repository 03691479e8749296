// Command applio is the terminal front end of the job application tracker.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blockedby/applio/internal/config"
	"github.com/blockedby/applio/internal/errs"
	"github.com/blockedby/applio/internal/logger"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// 2. Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	// 3. Cancel on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Wire the core and run the command
	a := newApp(cfg, os.Stdout)
	registry := NewCommandRegistry(os.Stdout)
	registerCommands(ctx, registry, a)

	err = registry.Execute(os.Args[1:])
	a.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", errs.UserMessage(err, err.Error()))
		os.Exit(1)
	}
}
