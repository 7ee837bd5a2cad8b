package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"GoldLens/internal/collector"
	"GoldLens/internal/config"
	"GoldLens/internal/logger"
	"GoldLens/internal/notifier"
	"GoldLens/internal/pipeline"
	"GoldLens/internal/recorder"
	"GoldLens/internal/scheduler"
	"GoldLens/internal/universe"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code; deferred cleanup happens before exit.
func run() int {
	logger.Init("info")
	defer logger.Sync()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.L.Errorf("load config: %v", err)
		return 1
	}

	logger.Init(cfg.Logging.Level)
	logger.L.Info("GoldLens starting...")

	if err := cfg.Validate(); err != nil {
		logger.L.Errorf("config validation: %v", err)
		return 1
	}

	def, err := universe.Load(cfg.Universe.File)
	if err != nil {
		logger.L.Errorf("load universe: %v", err)
		return 1
	}

	// Init providers
	yahoo := collector.NewYahooProvider(cfg.Provider.BaseURL, cfg.Provider.Proxy, cfg.Provider.Timeout, cfg.Provider.RequestsPerSecond)
	yahoo.UserAgent = cfg.Provider.UserAgent
	var lister collector.SymbolLister
	if cfg.Universe.IncludeSP500 {
		lister = collector.NewWikipediaLister(cfg.Universe.SP500URL, cfg.Provider.Timeout)
	}
	logger.L.Infof("data source: %s", yahoo.Name())

	// Init recorder
	rec, err := newRecorder(cfg, os.Getenv("DRY_RUN") == "true")
	if err != nil {
		logger.L.Errorf("init recorder: %v", err)
		return 1
	}
	defer rec.Close()

	// Init Telegram notifier
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.Enabled {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Provider.Proxy)
	}

	// Context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := pipeline.NewRunner(cfg, yahoo, yahoo, lister, def, rec)
	sched := scheduler.NewScheduler(ctx, runner, tn)

	if cfg.Schedule.Cron == "" {
		if err := sched.RunNow(); err != nil {
			logger.L.Errorf("run failed: %v", err)
			return exitCode(err)
		}
		return 0
	}

	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		logger.L.Errorf("register cron task: %v", err)
		return 1
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.L.Info("RUN_ON_START enabled, executing run now")
		go func() {
			if err := sched.RunNow(); err != nil {
				logger.L.Errorf("startup run: %v", err)
			}
		}()
	}

	logger.L.Infof("GoldLens is running on %q. Press Ctrl+C to stop.", cfg.Schedule.Cron)
	<-ctx.Done()
	logger.L.Info("shutdown signal received, stopping...")
	return 0
}

// newRecorder returns a no-op recorder for dry runs, otherwise a file
// recorder honouring the configured formats.
func newRecorder(cfg *config.Config, dryRun bool) (recorder.Recorder, error) {
	if dryRun {
		logger.L.Info("DRY_RUN enabled, artifacts are not written")
		return recorder.NewNoopRecorder(), nil
	}
	return recorder.NewFileRecorder(cfg.Output.Dir, cfg.HasFormat("csv"), cfg.HasFormat("xlsx"))
}

// exitCode maps a failed run to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, collector.ErrNoPriceData):
		return 2
	default:
		return 1
	}
}
