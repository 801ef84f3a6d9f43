// cmd/netwarden/main.go
package main

import (
    "context"
    "flag"
    "fmt"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/sirupsen/logrus"
    "netwarden/internal/config"
    "netwarden/internal/control"
    "netwarden/internal/journal"
    "netwarden/internal/monitor"
    "netwarden/internal/web"
    "netwarden/internal/worker"
)

func main() {
    configFile := flag.String("config", "config.yaml", "Configuration file path")
    settingsFile := flag.String("settings", "config/settings.json", "User settings file path")
    version := flag.Bool("version", false, "Show version information")
    flag.Parse()

    if *version {
        fmt.Printf("netwarden v%s\n", web.Version)
        os.Exit(0)
    }

    cfg, err := config.LoadOrDefault(*configFile)
    if err != nil {
        logrus.Fatalf("Failed to load config: %v", err)
    }

    setupLogging(cfg.Logging)

    logrus.WithFields(logrus.Fields{
        "config_file": *configFile,
        "port":        cfg.Server.Port,
        "workers":     cfg.Workers.Root,
    }).Info("Starting netwarden control plane")

    jnl, err := journal.Open(cfg.Journal.Path)
    if err != nil {
        logrus.Fatalf("Failed to open journal: %v", err)
    }
    defer jnl.Close()

    settings := config.NewSettingsStore(*settingsFile)
    runner := worker.NewRunner(cfg)
    supervisor := monitor.NewSupervisor(runner, settings)
    controller := control.New(runner, runner, supervisor, settings, jnl)

    if !controller.IsElevated() {
        logrus.Warn("Not running with elevated privileges; capture workers will likely fail")
    }

    webServer := web.NewServer(cfg, controller)

    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    go webServer.Start(ctx)
    go runJournalPurge(ctx, jnl, cfg.Journal.Retention)

    sigChan := make(chan os.Signal, 1)
    signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

    sig := <-sigChan
    logrus.WithField("signal", sig).Info("Received shutdown signal")

    // Kill any workers still running before going away.
    controller.StopMonitoring()

    shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer shutdownCancel()
    if err := webServer.Stop(shutdownCtx); err != nil {
        logrus.WithError(err).Warn("Web server shutdown failed")
    }

    logrus.Info("Shutdown complete")
}

func runJournalPurge(ctx context.Context, jnl *journal.Journal, retention time.Duration) {
    ticker := time.NewTicker(6 * time.Hour)
    defer ticker.Stop()

    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            removed, err := jnl.Purge(retention)
            if err != nil {
                logrus.WithError(err).Warn("Journal purge failed")
                continue
            }
            if removed > 0 {
                logrus.WithField("removed", removed).Info("Purged old journal events")
            }
        }
    }
}

func setupLogging(cfg config.LoggingConfig) {
    level, err := logrus.ParseLevel(cfg.Level)
    if err != nil {
        level = logrus.InfoLevel
    }
    logrus.SetLevel(level)

    if cfg.Format == "json" {
        logrus.SetFormatter(&logrus.JSONFormatter{})
    } else {
        logrus.SetFormatter(&logrus.TextFormatter{
            FullTimestamp: true,
        })
    }
}
