package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"library-portal/library"
)

// EnvPrefix prefixes every environment override, e.g. LIBRARY_PORTAL_BASE_URL.
const EnvPrefix = "LIBRARY_PORTAL"

// flagKeys maps persistent CLI flags onto config keys.
var flagKeys = map[string]string{
	"base-url":  "base_url",
	"data-dir":  "data_dir",
	"log-level": "log_level",
}

// Load builds Options from, in order of precedence, changed flags, the
// environment, file (if non-empty) and the defaults.
func Load(file string, flags *pflag.FlagSet) (*Options, error) {
	v := viper.New()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
	}

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return nil, errors.Wrapf(err, "unable to access config file %s", file)
		}
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", file)
		}
	}

	opts := &Options{}
	if err := v.Unmarshal(opts); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if opts.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "unable to locate home directory")
		}
		opts.DataDir = filepath.Join(home, defaultDataDirName)
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate rejects settings the client cannot run with.
func (o *Options) Validate() error {
	u, err := url.Parse(o.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("base_url %q must be an absolute http(s) URL", o.BaseURL)
	}
	switch strings.ToLower(o.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log_level %q must be debug, info, warn or error", o.LogLevel)
	}
	if o.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if o.RequestsPerSecond <= 0 || o.RequestBurst < 1 {
		return errors.New("requests_per_second must be positive and request_burst at least 1")
	}
	fee, err := decimal.NewFromString(o.DailyLateFee)
	if err != nil {
		return errors.Wrapf(err, "daily_late_fee %q", o.DailyLateFee)
	}
	if fee.IsNegative() {
		return errors.Errorf("daily_late_fee %s must not be negative", fee)
	}
	if o.DueSoonDays < 0 {
		return errors.New("due_soon_days must not be negative")
	}
	if o.MaxBorrowDays < 1 {
		return errors.New("max_borrow_days must be at least 1")
	}
	if o.DefaultBorrowDays < 1 || o.DefaultBorrowDays > o.MaxBorrowDays {
		return errors.Errorf("default_borrow_days must be between 1 and %d", o.MaxBorrowDays)
	}
	if _, err := o.Location(); err != nil {
		return err
	}
	return nil
}

// StorePath is the local SQLite file.
func (o *Options) StorePath() string { return o.inDataDir(o.StoreFile) }

// LogPath is the rotating log file.
func (o *Options) LogPath() string { return o.inDataDir(o.LogFile) }

func (o *Options) inDataDir(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.DataDir, name)
}

// Location resolves TimeZone; "" and "Local" mean the machine zone.
func (o *Options) Location() (*time.Location, error) {
	if o.TimeZone == "" || strings.EqualFold(o.TimeZone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(o.TimeZone)
	if err != nil {
		return nil, errors.Wrapf(err, "time_zone %q", o.TimeZone)
	}
	return loc, nil
}

// Policy is the loan classification policy these options describe.
func (o *Options) Policy() library.Policy {
	return library.Policy{
		DailyLateFee: decimal.RequireFromString(o.DailyLateFee),
		DueSoonDays:  o.DueSoonDays,
	}
}

// ManagerOptions converts to the library façade's options.
func (o *Options) ManagerOptions() library.Options {
	return library.Options{
		Policy:            o.Policy(),
		DefaultBorrowDays: o.DefaultBorrowDays,
		MaxBorrowDays:     o.MaxBorrowDays,
	}
}
