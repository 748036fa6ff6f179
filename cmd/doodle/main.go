package main

import (
	"errors"
	"fmt"
	stlog "log" // Standard log for fatal errors before the logger is ready
	"os"

	"github.com/bethropolis/doodle/internal/app"
	"github.com/bethropolis/doodle/internal/config"
	"github.com/bethropolis/doodle/internal/export"
	"github.com/bethropolis/doodle/internal/logger"
	"github.com/bethropolis/doodle/internal/storage"
)

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	flags.ParseFlags()

	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		os.Exit(0)
	}

	// --- Configuration ---
	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, &flags)

	// --- Logger Initialization ---
	out, closeLog, err := logger.OpenOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("%v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, out)

	if cfgErr != nil {
		logger.Warnf("Config: %v. Continuing with defaults and flags.", cfgErr)
	}
	logger.Infof("Starting %s %s", config.AppName, config.Version)
	logger.Debugf("Storage: %q, export path: %q", cfg.Storage.Path, cfg.Export.Path)

	if *flags.Dump != "" {
		if err := dump(cfg, *flags.Dump); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
			closeLog()
			os.Exit(1)
		}
		return
	}

	// --- Create and Run App ---
	doodleApp, err := app.NewApp(cfg)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}

	if err := doodleApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

// dump writes the persisted drawing as a flattened PNG without starting the UI.
// The path "-" writes to stdout.
func dump(cfg *config.Config, path string) error {
	store := storage.Open(cfg.Storage.Path)
	defer store.Close()

	data, err := export.FromStore(store)
	if errors.Is(err, export.ErrNoDrawing) {
		return fmt.Errorf("no stored drawing in '%s'", cfg.Storage.Path)
	}
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := export.WriteFile(path, data); err != nil {
		return err
	}
	logger.Infof("Dumped %d bytes to %s", len(data), path)
	return nil
}
