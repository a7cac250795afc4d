package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"catalog-migrate/internal/model"
	"catalog-migrate/internal/pipeline"
	"catalog-migrate/internal/store"
	"catalog-migrate/pkg/utils"

	"github.com/google/uuid"
)

var (
	configPath = flag.String("config", "pipeline_config.json", "Path to configuration file")
	startFrom  = flag.Int("start-from", 0, "Start from specific step (0-5)")
	testMode   = flag.Bool("test", false, "Run in test mode (process limited products)")
	force      = flag.Bool("force", false, "Overwrite existing step outputs instead of reusing them")
	dbPath     = flag.String("db", "migrate.db", "Path to run tracking database")
)

func main() {
	flag.Parse()

	cfg, created, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if created {
		fmt.Printf("Configuration file not found, default config saved to: %s\n", *configPath)
	} else {
		fmt.Printf("Loaded configuration from: %s\n", *configPath)
	}

	if *testMode {
		cfg.TestMode = true
		fmt.Println("Test mode enabled via command line")
	}
	if *force {
		cfg.Force = true
	}

	if err := store.InitDB(*dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open tracking database: %v\n", err)
		os.Exit(1)
	}

	ws := utils.NewWorkspace(cfg.Paths.OutputDir)
	if err := ws.EnsureOutputDirExists(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runID := uuid.New().String()
	logPath := ws.LogFilePath(time.Now())
	runLog, err := pipeline.NewRunLog(logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer runLog.Close()

	store.SaveRun(runID, cfg.StoreID, cfg.StoreName, logPath)

	if _, _, err := pipeline.Run(cfg, runID, *startFrom, runLog); err != nil {
		var stepErr *pipeline.StepError
		if errors.As(err, &stepErr) {
			fmt.Fprintf(os.Stderr, "\nPipeline failed: %v\n", err)
			fmt.Fprintf(os.Stderr, "To resume: migrate --start-from %d\n", stepErr.Index)
		} else {
			fmt.Fprintf(os.Stderr, "\nPipeline failed: %v\n", err)
		}
		fmt.Fprintf(os.Stderr, "Log file: %s\n", logPath)
		os.Exit(1)
	}
}
