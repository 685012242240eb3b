// Package config provides the configuration support for the application.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Conf for yt-recent config yml
type Conf struct {
	Channels    []string `yaml:"channels"`    // default channels, used when request has none
	Limit       int      `yaml:"limit"`       // default videos per channel, 0 for 50
	Concurrency int      `yaml:"concurrency"` // per-video yt-dlp calls in flight

	YtDlp struct {
		Binary         string        `yaml:"binary"`
		Timeout        time.Duration `yaml:"timeout"`
		MaxOutput      int           `yaml:"max_output"`
		ExtraArgs      []string      `yaml:"extra_args"`
		UpdateCmd      string        `yaml:"update_cmd"`
		UpdateInterval time.Duration `yaml:"update_interval"`
	} `yaml:"ytdlp"`

	Scraper struct {
		Timeout      time.Duration `yaml:"timeout"`
		UserAgent    string        `yaml:"user_agent"`
		MaxRedirects int           `yaml:"max_redirects"`
	} `yaml:"scraper"`

	Server struct {
		Port      int           `yaml:"port"`
		CacheTTL  time.Duration `yaml:"cache_ttl"`
		RateLimit float64       `yaml:"rate_limit"` // requests per second per ip, 0 for 10, negative disables
	} `yaml:"server"`

	DB string `yaml:"db"` // journal file, empty to disable
}

// Load config from file
func Load(fname string) (res *Conf, err error) {
	res = &Conf{}
	data, err := os.ReadFile(fname) // nolint
	if err != nil {
		return nil, err
	}
	// expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	if err := yaml.Unmarshal(data, res); err != nil {
		return nil, fmt.Errorf("can't parse %s: %w", fname, err)
	}
	res.setDefaults()
	return res, nil
}

// Default returns config with all defaults set, used when no config file given
func Default() *Conf {
	res := &Conf{}
	res.setDefaults()
	return res
}

// setDefaults sets default values for config
func (c *Conf) setDefaults() {
	if c.Limit == 0 {
		c.Limit = 50
	}
	if c.Concurrency == 0 {
		c.Concurrency = 5
	}
	if c.YtDlp.Binary == "" {
		c.YtDlp.Binary = "yt-dlp"
	}
	if c.YtDlp.Timeout == 0 {
		c.YtDlp.Timeout = 60 * time.Second
	}
	if c.YtDlp.MaxOutput == 0 {
		c.YtDlp.MaxOutput = 10 * 1024 * 1024
	}
	if c.YtDlp.UpdateInterval == 0 {
		c.YtDlp.UpdateInterval = 24 * time.Hour
	}
	if c.Scraper.Timeout == 0 {
		c.Scraper.Timeout = 15 * time.Second
	}
	if c.Scraper.MaxRedirects == 0 {
		c.Scraper.MaxRedirects = 5
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = 10
	}
}
