// Vet reports service: converts veterinary appointment exports into HTML
// reports, regenerates them on a schedule, and serves the results.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/vetscribe/vetreports-api/config"
	"github.com/vetscribe/vetreports-api/data"
	"github.com/vetscribe/vetreports-api/generator"
	"github.com/vetscribe/vetreports-api/htmlreport"
	"github.com/vetscribe/vetreports-api/logging"
	"github.com/vetscribe/vetreports-api/reportparser"
	"github.com/vetscribe/vetreports-api/scheduler"
	"github.com/vetscribe/vetreports-api/server"
	"github.com/vetscribe/vetreports-api/validation"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir, cfg.LogRetentionWeeks, cfg.MaxLogFileSize, logging.ParseLevel(cfg.LogLevel))
	defer logging.Close()

	dataContainer := data.NewDataContainer()
	parser := reportparser.NewAppointmentsParser()
	renderer := htmlreport.NewRenderer()
	reportGenerator := generator.NewReportGenerator(cfg.OutputDir, cfg.TimestampReports, renderer)

	validator := validation.NewDataValidator()

	sched := scheduler.NewScheduler(dataContainer, parser, reportGenerator, validator, cfg.InputDir, cfg.GenerateInterval)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, dataContainer, validator, sched)

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	// Attempt graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown failed", "error", err)
	}
}
