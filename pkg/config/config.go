package config

import (
	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigtoml"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	DownloaderCurl = "curl"
	DownloaderHTTP = "http"
)

// Config describes all configuration options
type Config struct {
	// Classpath overrides the compile classpath
	Classpath  string `env:"CLASSPATH" toml:"classpath" usage:"Classpath used to compile the jar and run the tests"`
	LogLevel   string `env:"KTBIND_LOG_LEVEL" toml:"log_level" default:"info" usage:"Log level (debug, info, warn, error)"`
	LogJSON    bool   `env:"KTBIND_LOG_JSON" toml:"log_json" default:"false" usage:"Output JSONND instead of pretty console messages"`
	Downloader string `env:"KTBIND_DOWNLOADER" toml:"downloader" default:"curl" usage:"How vendor jars are fetched (curl or http)"`
}

var logLevels = map[string]zerolog.Level{
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
	"fatal":   zerolog.FatalLevel,
}

// Loader initializes an empty config object and returns a new Loader for this object.
// files lists optional TOML files; missing files are ignored.
func Loader(files ...string) (*Config, *aconfig.Loader) {
	cfg := Config{}
	return &cfg, aconfig.LoaderFor(&cfg, aconfig.Config{
		SkipFlags: true,
		Files:     files,
		FileDecoders: map[string]aconfig.FileDecoder{
			".toml": aconfigtoml.New(),
		},
	})
}

// Load reads defaults, the given files and the environment, then validates the result
func Load(files ...string) (*Config, error) {
	cfg, loader := Loader(files...)
	if err := loader.Load(); err != nil {
		return nil, eris.Wrap(err, "Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifies that all config fields have valid values
func (cfg *Config) Validate() error {
	_, ok := logLevels[cfg.LogLevel]
	if !ok {
		return eris.Errorf(`Invalid value for log_level: %s`, cfg.LogLevel)
	}

	switch cfg.Downloader {
	case DownloaderCurl, DownloaderHTTP:
	default:
		return eris.Errorf(`Invalid value for downloader: %s (must be one of curl or http)`, cfg.Downloader)
	}

	return nil
}

// ZerologLevel converts the .LogLevel field to a zerolog.Level
func (cfg *Config) ZerologLevel() zerolog.Level {
	return logLevels[cfg.LogLevel]
}
