// Package config reads server settings from the environment.
//
// Variables may also come from a dotenv file: CROWN_ENV_FILE names it, and
// ".env" in the working directory is used when present. Variables already set
// in the process environment win over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvFile                  = "CROWN_ENV_FILE"
	EnvLogLevel              = "CROWN_MCP_LOG_LEVEL"
	EnvDefaultCutoff         = "CROWN_DEFAULT_CUTOFF"
	EnvDefaultLocalMaxRadius = "CROWN_DEFAULT_LOCAL_MAX_RADIUS"
	EnvDefaultPlateauRadius  = "CROWN_DEFAULT_PLATEAU_RADIUS"
	EnvMaxChainDepth         = "CROWN_MAX_CHAIN_DEPTH"
)

const defaultEnvFile = ".env"

// Defaults are the detection parameters used when a tool call omits them.
type Defaults struct {
	Cutoff         float64
	LocalMaxRadius int
	PlateauRadius  int
	MaxChainDepth  int
}

// Config holds the server settings.
type Config struct {
	LogLevel string
	Defaults Defaults
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Defaults: Defaults{
			Cutoff:         15,
			LocalMaxRadius: 1,
			PlateauRadius:  1,
			MaxChainDepth:  10000,
		},
	}
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}

// Load builds a Config from the built-in defaults, the dotenv file and the
// process environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg := Default()
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	var err error
	if cfg.Defaults.Cutoff, err = floatEnv(EnvDefaultCutoff, cfg.Defaults.Cutoff); err != nil {
		return nil, err
	}
	if cfg.Defaults.LocalMaxRadius, err = intEnv(EnvDefaultLocalMaxRadius, cfg.Defaults.LocalMaxRadius); err != nil {
		return nil, err
	}
	if cfg.Defaults.PlateauRadius, err = intEnv(EnvDefaultPlateauRadius, cfg.Defaults.PlateauRadius); err != nil {
		return nil, err
	}
	if cfg.Defaults.MaxChainDepth, err = intEnv(EnvMaxChainDepth, cfg.Defaults.MaxChainDepth); err != nil {
		return nil, err
	}

	if math.IsNaN(cfg.Defaults.Cutoff) || math.IsInf(cfg.Defaults.Cutoff, 0) {
		return nil, fmt.Errorf("config: %s must be finite, got %v", EnvDefaultCutoff, cfg.Defaults.Cutoff)
	}
	if cfg.Defaults.LocalMaxRadius < 0 || cfg.Defaults.PlateauRadius < 0 {
		return nil, fmt.Errorf("config: search radii must be non-negative")
	}
	if cfg.Defaults.MaxChainDepth <= 0 {
		return nil, fmt.Errorf("config: %s must be positive", EnvMaxChainDepth)
	}
	return cfg, nil
}

// loadEnvFile applies the dotenv file. A missing default file is not an
// error; a missing file named by CROWN_ENV_FILE is.
func loadEnvFile() error {
	path := os.Getenv(EnvFile)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil || (!explicit && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("config: failed to load %s: %w", path, err)
}

func floatEnv(name string, def float64) (float64, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", name, v, err)
	}
	return f, nil
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", name, v, err)
	}
	return n, nil
}
