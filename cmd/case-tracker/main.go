package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawos/case-tracker/internal/clock"
	"lawos/case-tracker/internal/config"
	"lawos/case-tracker/internal/database"
	"lawos/case-tracker/internal/handler"
	"lawos/case-tracker/internal/locator"
	"lawos/case-tracker/internal/logger"
	"lawos/case-tracker/internal/repository"
	"lawos/case-tracker/internal/router"
	"lawos/case-tracker/internal/service"
	"lawos/case-tracker/internal/timer"
	"lawos/case-tracker/internal/tray"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config/local.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting case tracker",
		zap.String("env", cfg.Env),
		zap.String("config_path", *configPath),
	)

	db, err := database.New(cfg.Storage.Path, log.Logger)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	snapshotRepo := repository.NewSnapshotRepository(db.DB)
	timerRefRepo := repository.NewTimerRefRepository(db.DB)

	clk := clock.System()
	tracker := timer.New(clk)
	timerLocator := locator.New(timerRefRepo, log.Logger)

	caseService := service.NewCaseService(
		snapshotRepo,
		timerRefRepo,
		tracker,
		timerLocator,
		clk,
		log.Logger,
	)

	dataHandler := handler.NewDataHandler(caseService, log.Logger)
	timerHandler := handler.NewTimerHandler(caseService, log.Logger)
	trashHandler := handler.NewTrashHandler(caseService, log.Logger)
	caseHandler := handler.NewCaseHandler(caseService, log.Logger)

	addr := fmt.Sprintf("localhost:%d", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router.New(dataHandler, timerHandler, trashHandler, caseHandler, log.Logger),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", zap.String("address", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", zap.Error(err))
		}
	}()

	var widget *tray.Widget
	if cfg.Tray.Enabled {
		widget = tray.New(caseService, log.Logger)
		go widget.Run()
		log.Info("Tray timer widget started")
	} else {
		log.Info("Tray timer widget disabled in configuration")
	}

	log.Info("Case tracker started successfully",
		zap.String("address", addr),
		zap.String("storage_path", cfg.Storage.Path),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Info("Received shutdown signal", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Warn("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	if widget != nil {
		widget.Stop()
	}

	log.Info("Case tracker stopped")
}
