package config

import (
	"WooWithERPNext/internal/syncerr"
	"WooWithERPNext/pkg/logging"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"gopkg.in/gcfg.v1"
)

const DefaultPath = "./config/config.ini"

type (
	Config struct {
		WOOCOMMERCE struct {
			URL     string
			Key     string
			Secret  string
			Timeout int // seconds, per HTTP call
			RPS     int
		}
		SYNC struct {
			EnableSync bool
			Interval   string // daily, weekly, monthly
		}
		TELEGRAM struct {
			BotToken string
			ChatID   int64
			Report   bool
		}
		SERVICE struct {
			Port int
		}
		DBSQLITE struct {
			DB string
		}
		LOG struct {
			Debug bool
		}
	}
)

const (
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
)

// Load reads the INI file into a fresh Config. Every run works against the
// value loaded at startup; nothing mutates it afterwards.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger()

	cfg := new(Config)
	cfg.WOOCOMMERCE.Timeout = 10
	cfg.WOOCOMMERCE.RPS = 5
	cfg.SYNC.Interval = IntervalDaily
	cfg.SERVICE.Port = 8080
	cfg.DBSQLITE.DB = "erp.db"

	err := gcfg.ReadFileInto(cfg, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse gcfg data from %s", path)
	}
	logger.Infof("Config is read from %s", path)

	return cfg, nil
}

// Validate checks the remote credentials before any fetch is attempted.
func (cfg *Config) Validate() error {
	err := validation.Errors{
		"url":      validation.Validate(cfg.WOOCOMMERCE.URL, validation.Required),
		"key":      validation.Validate(cfg.WOOCOMMERCE.Key, validation.Required),
		"secret":   validation.Validate(cfg.WOOCOMMERCE.Secret, validation.Required),
		"interval": validation.Validate(cfg.SYNC.Interval, validation.In(IntervalDaily, IntervalWeekly, IntervalMonthly)),
	}.Filter()
	if err != nil {
		return &syncerr.ConfigurationError{Message: err.Error()}
	}
	return nil
}
