package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"studiocal/internal/config"
	"studiocal/internal/feed"
	appLog "studiocal/internal/log"
	"studiocal/internal/store"
	"studiocal/internal/web"
)

const (
	syncBackfillDays = 7
	syncHorizonDays  = 90
)

type flagConfig struct {
	configPath string
	listen     string
	once       bool
}

func main() {
	appLog.Info("studiocal starting", "version", "0.1.0")

	flags := parseFlags()

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}
	if flags.listen != "" {
		conf.Listen = flags.listen
	}
	appLog.SetLevel(appLog.ParseLevel(conf.LogLevel))

	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"refresh", conf.RefreshCron,
		"working_hours", conf.WorkingHoursStart,
		"working_hours_end", conf.WorkingHoursEnd,
		"sync_sources", len(conf.SyncSources),
		"data_dir", conf.DataDir,
		"once", flags.once,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	st := store.Open(filepath.Join(conf.DataDir, "records"))
	srv := web.NewServer(conf, st)

	fetcher := feed.NewFetcher(filepath.Join(conf.DataDir, "sync-cache"))
	refresh := func() {
		records := feed.RefreshAppointments(ctx, fetcher, buildSources(conf), expandWindow(conf))
		srv.SetSyncedAppointments(records)
	}

	if len(conf.SyncSources) > 0 {
		refresh()
	}
	if flags.once {
		appLog.Info("single refresh completed, exiting")
		return
	}

	scheduler := cron.New()
	if len(conf.SyncSources) > 0 {
		if _, err := scheduler.AddFunc(conf.RefreshCron, refresh); err != nil {
			appLog.Error("invalid refresh cron expression", err, "refresh", conf.RefreshCron)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	httpServer := &http.Server{
		Addr:    conf.Listen,
		Handler: srv.Handler(),
	}

	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("HTTP server failed", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP server shutdown failed", err)
	}

	appLog.Info("studiocal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/studiocal/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.once, "once", false, "Run one sync refresh and exit")

	flag.Parse()

	return cfg
}

func buildSources(conf *config.Config) []feed.Source {
	sources := make([]feed.Source, 0, len(conf.SyncSources))
	for _, src := range conf.SyncSources {
		if src.URL == "" {
			continue
		}
		id := src.ID
		if id == "" {
			if src.Name != "" {
				id = src.Name
			} else {
				id = src.URL
			}
		}
		sources = append(sources, feed.Source{ID: id, URL: src.URL, Color: src.Color})
	}
	return sources
}

func expandWindow(conf *config.Config) feed.ExpandConfig {
	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		appLog.Error("failed to load timezone, falling back to local", err, "name", conf.Timezone)
		loc = time.Local
	}
	now := time.Now().In(loc)
	return feed.ExpandConfig{
		DisplayLocation: loc,
		RangeStart:      now.AddDate(0, 0, -syncBackfillDays),
		RangeEnd:        now.AddDate(0, 0, syncHorizonDays),
	}
}
