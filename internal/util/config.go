package util

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	DefaultLogLevel      = "error"
	DefaultJournalDriver = "memory"
	ConfigEnv            = "SKEIN_CONFIG"
)

type Configuration struct {
	Version   string `toml:"-"`
	BuildDate string `toml:"-"`
	Commit    string `toml:"-"`

	LogLevel string        `toml:"log_level"`
	LogFile  string        `toml:"log_file"`
	Journal  JournalConfig `toml:"journal"`
}

// JournalConfig selects where collapsed diagnostics are kept. Driver is one
// of memory, bolt, sqlite3, mysql or postgres; DSN is a file path for bolt
// and a connection string for the sql drivers.
type JournalConfig struct {
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		LogLevel: DefaultLogLevel,
		Journal:  JournalConfig{Driver: DefaultJournalDriver},
	}
}

// LoadConfiguration reads a TOML file over the defaults. A missing file at
// the default location is not an error; an explicitly named one is.
func LoadConfiguration(path string, explicit bool) (Configuration, error) {
	config := DefaultConfiguration()
	if path == "" {
		return config, nil
	}
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("loading configuration %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return config, fmt.Errorf("loading configuration %s: unknown keys %v", path, undecoded)
	}
	if config.Journal.Driver == "" {
		config.Journal.Driver = DefaultJournalDriver
	}
	return config, nil
}

// ConfigPath returns the path named by SKEIN_CONFIG, if any.
func ConfigPath() string {
	return os.Getenv(ConfigEnv)
}
