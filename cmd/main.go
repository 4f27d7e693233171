package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"account-transactions/internal/client"
	"account-transactions/internal/config"
	"account-transactions/internal/form"
	"account-transactions/internal/prompt"
	"account-transactions/internal/tui"

	"github.com/charmbracelet/log"
)

func main() {
	promptMode := flag.Bool("prompt", false, "ask for the account with a one-shot form instead of the live view")
	flag.Parse()

	if err := run(*promptMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run holds everything that needs cleanup, so main can exit only after the
// deferred calls have finished.
func run(promptMode bool) error {
	bootLog := log.NewWithOptions(os.Stderr, log.Options{Prefix: "account-transactions"})

	// Load environment variables
	cfg, err := config.Load(bootLog)
	if err != nil {
		return err
	}

	logOut, closeLog, err := logOutput(cfg, promptMode)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
	}
	defer closeLog()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		bootLog.Warn("unknown LOG_LEVEL, using info", "level", cfg.LogLevel)
		level = log.InfoLevel
	}
	logger := log.NewWithOptions(logOut, log.Options{
		Prefix:          "account-transactions",
		Level:           level,
		ReportTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("connecting to transaction service", "addr", cfg.ServerAddr)
	txClient, err := client.NewClient(client.Options{
		ServerAddr: cfg.ServerAddr,
		APIKey:     cfg.APIKey,
		Timeout:    cfg.RequestTimeout,
	}, logger.WithPrefix("grpc-client"))
	if err != nil {
		return fmt.Errorf("failed to create transaction client: %w", err)
	}
	defer txClient.Close()

	formLog := logger.WithPrefix("form")
	if promptMode {
		component := form.NewComponent(txClient, form.Notifiers{
			prompt.PrintNotifier(os.Stdout),
			form.LogNotifier(formLog),
		}, formLog)
		err = prompt.Run(ctx, component, os.Stdout)
	} else {
		toasts := &tui.ToastBoard{}
		component := form.NewComponent(txClient, form.Notifiers{
			toasts,
			form.LogNotifier(formLog),
		}, formLog)
		err = tui.Run(ctx, component, toasts)
	}
	if err != nil {
		logger.Error("exiting", "err", err)
		return err
	}
	return nil
}

// logOutput picks where logs go. The live view owns the terminal, so it only
// logs when LOG_FILE is set.
func logOutput(cfg *config.Config, promptMode bool) (io.Writer, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	if promptMode {
		return os.Stderr, func() {}, nil
	}
	return io.Discard, func() {}, nil
}
