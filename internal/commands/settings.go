package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/diogo/startupmentor/internal/config"
	"github.com/diogo/startupmentor/internal/logger"
)

// logFileDefault selects the log file inside the config directory
const logFileDefault = "default"

// dotEnvFile is read from the working directory before the environment is applied
const dotEnvFile = ".env"

// loadSettings resolves the configuration: file, then environment, then flags.
func loadSettings() (config.Config, error) {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return config.DefaultConfig(), err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if endpointFlag != "" {
		cfg.Endpoint = endpointFlag
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupLogger builds the command logger. verboseOut, when non-nil, receives
// debug logs on the console; otherwise logs go to the configured file or
// nowhere.
func setupLogger(cfg config.Config, verboseOut io.Writer) (zerolog.Logger, io.Closer, error) {
	if verboseOut != nil {
		return logger.New(logger.Options{Level: "debug", Format: "console", Writer: verboseOut})
	}

	file := cfg.LogFile
	if file == logFileDefault {
		path, err := config.DefaultLogPath()
		if err != nil {
			return logger.Nop(), nil, err
		}
		file = path
	}

	return logger.New(logger.Options{Level: cfg.LogLevel, File: file})
}
