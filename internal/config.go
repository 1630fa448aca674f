package internal

import (
	"fmt"
	errs "miniraw/errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Config struct {
	Host              string        `env:"HOST,default=0.0.0.0" validate:"required"`
	Port              int           `env:"PORT,default=9100" validate:"min=1,max=65535"`
	OutputDir         string        `env:"OUTPUT_DIR"`
	FileExtension     string        `env:"FILE_EXTENSION,default=.prn" validate:"required,startswith=.,excludesall=/\\"`
	ChunkSizeKB       int           `env:"CHUNK_SIZE_KB,default=32" validate:"min=1,max=4096"`
	LogLevel          string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH"`
	JournalBufferSize int           `env:"JOURNAL_BUFFER_SIZE,default=256" validate:"min=1"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=1s" validate:"gt=0s"`
	StatsInterval     time.Duration `env:"STATS_INTERVAL,default=1m" validate:"gte=0s"`
	DebugPort         int           `env:"DEBUG_PORT,default=0" validate:"min=0,max=65535"`
	// Discard overrides the persisted discard setting when set.
	Discard *bool `env:"DISCARD"`
}

// LoadConfig reads the environment, fills the path defaults and validates
// the result.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
	}
	config.LogLevel = strings.ToUpper(strings.TrimSpace(config.LogLevel))

	if config.OutputDir == "" {
		dir, err := ExecutableDir()
		if err != nil {
			return Config{}, fmt.Errorf("%w: no OUTPUT_DIR and %v", errs.ErrInvalidConfig, err)
		}
		config.OutputDir = dir
	}
	if config.BadgerFilepath == "" {
		config.BadgerFilepath = filepath.Join(config.OutputDir, ".miniraw")
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidConfig, err)
	}
	if c.DebugPort == c.Port {
		return fmt.Errorf("%w: DEBUG_PORT and PORT are both %d", errs.ErrInvalidConfig, c.Port)
	}
	return nil
}

func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) ChunkSize() int {
	return c.ChunkSizeKB * 1024
}

// ExecutableDir is the directory holding the running binary.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
