package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_DEBUG_JOURNAL dumps the job journal at the end of each scenario
	DebugJournal bool `envconfig:"E2E_DEBUG_JOURNAL" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours     bool          `envconfig:"E2E_COLOURS" default:"true"`
	ChunkSizeKB int           `envconfig:"E2E_CHUNK_SIZE_KB" default:"4"`
	JobTimeout  time.Duration `envconfig:"E2E_JOB_TIMEOUT" default:"10s"`
	LogLevel    string        `envconfig:"E2E_LOG_LEVEL" default:"ERROR"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
