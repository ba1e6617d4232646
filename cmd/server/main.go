package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/uhaszYsz/mmomicro/internal/domain"
	"github.com/uhaszYsz/mmomicro/internal/engine"
	"github.com/uhaszYsz/mmomicro/internal/infrastructure/storage"
	"github.com/uhaszYsz/mmomicro/internal/server"
	"github.com/uhaszYsz/mmomicro/internal/version"
	"github.com/uhaszYsz/mmomicro/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

func init() {
	logger.Init()
}

func main() {
	var (
		configPath  string
		seed        int64
		journalDump string
	)
	flag.StringVar(&configPath, "config", "", "Path to config file (yaml/json/toml)")
	// 0 - взять из конфига или сгенерировать случайно
	flag.Int64Var(&seed, "seed", 0, "World seed (0 for config/random)")
	flag.StringVar(&journalDump, "journal-dump", "", "Print .mmoj journal as JSON lines and exit")
	flag.Parse()

	if journalDump != "" {
		if err := dumpJournal(journalDump); err != nil {
			logger.Log.WithError(err).Fatal("Journal dump failed")
		}
		return
	}

	logger.Log.Info("Starting MMO server...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	logger.Log.WithFields(logrus.Fields{
		"seed":  cfg.Seed,
		"port":  cfg.Port,
		"tick":  cfg.TickInterval,
		"bots":  cfg.Bots,
		"shard": cfg.ShardId,
	}).Info("Config loaded")

	gameService, err := engine.NewService(cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build game service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	gameService.Start(ctx)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	srv := server.New(gameService, cfg.Port)
	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.WithError(err).Fatal("Server start error")
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown")
	}

	// Цикл инстанса закрывает журнал при выходе
	cancel()
	<-gameService.Done()
	gameService.Close()

	logger.Log.Info("Done.")
}

func dumpJournal(path string) error {
	enc := json.NewEncoder(os.Stdout)
	hdr, err := storage.Each(path, func(e domain.JournalEntry) error {
		return enc.Encode(e)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "journal v%d seed=%d started=%s\n",
		hdr.Version, hdr.Seed, time.UnixMilli(hdr.Timestamp).UTC().Format(time.RFC3339))
	return nil
}
