package config

import "time"

const (
	defaultBaseURL           = "http://localhost:8080/api"
	defaultDataDirName       = ".library-portal"
	defaultStoreFile         = "library.db"
	defaultLogFile           = "library-portal.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 10
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultRequestTimeout    = 15 * time.Second
	defaultRequestsPerSecond = 5.0
	defaultRequestBurst      = 10
	defaultDailyLateFee      = "0.50"
	defaultDueSoonDays       = 2
	defaultBorrowDays        = 14
	defaultMaxBorrowDays     = 30
	defaultTimeZone          = "Local"
)

// Options is the client configuration. Tags are mapstructure because viper
// decodes through it.
type Options struct {
	// BaseURL is the backend API root, e.g. http://localhost:8080/api
	BaseURL string `mapstructure:"base_url"`
	// DataDir holds the local store and the log file
	DataDir string `mapstructure:"data_dir"`
	// StoreFile is the SQLite file, relative to DataDir unless absolute
	StoreFile string `mapstructure:"store_file"`

	LogFile           string `mapstructure:"log_file"`
	LogLevel          string `mapstructure:"log_level"`
	LogFileMaxSize    int    `mapstructure:"log_file_max_size"` // megabytes
	LogFileMaxBackups int    `mapstructure:"log_file_max_backups"`
	LogFileMaxAge     int    `mapstructure:"log_file_max_age"` // days
	LogCompress       bool   `mapstructure:"log_compress"`

	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	RequestBurst      int           `mapstructure:"request_burst"`

	// DailyLateFee is a decimal string so it never passes through float64
	DailyLateFee      string `mapstructure:"daily_late_fee"`
	DueSoonDays       int    `mapstructure:"due_soon_days"`
	DefaultBorrowDays int    `mapstructure:"default_borrow_days"`
	MaxBorrowDays     int    `mapstructure:"max_borrow_days"`
	// TimeZone applies to backend timestamps sent without an offset
	TimeZone string `mapstructure:"time_zone"`
}

func defaults() map[string]any {
	return map[string]any{
		"base_url":             defaultBaseURL,
		"data_dir":             "",
		"store_file":           defaultStoreFile,
		"log_file":             defaultLogFile,
		"log_level":            defaultLogLevel,
		"log_file_max_size":    defaultLogFileMaxSize,
		"log_file_max_backups": defaultLogFileMaxBackups,
		"log_file_max_age":     defaultLogFileMaxAge,
		"log_compress":         defaultLogCompress,
		"request_timeout":      defaultRequestTimeout,
		"requests_per_second":  defaultRequestsPerSecond,
		"request_burst":        defaultRequestBurst,
		"daily_late_fee":       defaultDailyLateFee,
		"due_soon_days":        defaultDueSoonDays,
		"default_borrow_days":  defaultBorrowDays,
		"max_borrow_days":      defaultMaxBorrowDays,
		"time_zone":            defaultTimeZone,
	}
}
