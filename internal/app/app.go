// Package app wires configuration, logging and services into a single
// container shared by the server entrypoint and tests.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/folio/internal/common"
	"github.com/bobmcallan/folio/internal/interfaces"
	"github.com/bobmcallan/folio/internal/services/holdings"
	"github.com/bobmcallan/folio/internal/services/performance"
)

// App holds all initialized services.
type App struct {
	Config             *common.Config
	Logger             *common.Logger
	PerformanceService interfaces.PerformanceService
	HoldingsService    interfaces.HoldingsService
	StartupTime        time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	// Load version from .version file (fallback if ldflags not set)
	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Load configuration - check provided path, FOLIO_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("FOLIO_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "folio.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/folio.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	a := &App{
		Config:             config,
		Logger:             logger,
		PerformanceService: performance.NewService(config.Calculation, logger),
		HoldingsService:    holdings.NewService(logger),
		StartupTime:        time.Now(),
	}

	logger.Info().
		Str("environment", config.Environment).
		Int("irr_max_iterations", config.Calculation.IRRMaxIterations).
		Float64("irr_tolerance", config.Calculation.IRRTolerance).
		Msg("Application initialized")

	return a, nil
}
