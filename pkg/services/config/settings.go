package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Settings tune the scraping client. Everything has a default; a profile file
// is only needed to override them (e.g. pointing at a staging portal).
type Settings struct {
	BaseURL        string        `mapstructure:"base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	SweepWorkers   int           `mapstructure:"sweep_workers"`
}

const (
	defaultBaseURL        = "https://www.nrsaccounting.com"
	defaultRequestTimeout = 30 * time.Second
	defaultSweepWorkers   = 4
)

// LoadSettings loads scraper settings from the given profile path, or returns
// defaults when path is empty.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("request_timeout", defaultRequestTimeout)
	v.SetDefault("sweep_workers", defaultSweepWorkers)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if settings.SweepWorkers < 1 {
		settings.SweepWorkers = 1
	}
	return &settings, nil
}
