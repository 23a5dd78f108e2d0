package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	opts, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL, opts.BaseURL)
	assert.Equal(t, 15*time.Second, opts.RequestTimeout)
	assert.Equal(t, 14, opts.DefaultBorrowDays)
	assert.Equal(t, "0.5", opts.Policy().DailyLateFee.String())
	assert.Equal(t, 2, opts.Policy().DueSoonDays)
	assert.Contains(t, opts.StorePath(), defaultDataDirName)
}

func TestLoadFile(t *testing.T) {
	opts, err := Load("testdata/config.toml", nil)
	require.NoError(t, err)

	assert.Equal(t, "https://library.example.org/api", opts.BaseURL)
	assert.Equal(t, "/tmp/library-portal-test/library.db", opts.StorePath())
	assert.Equal(t, 5*time.Second, opts.RequestTimeout)
	assert.Equal(t, "debug", opts.LogLevel)

	m := opts.ManagerOptions()
	assert.Equal(t, "0.75", m.Policy.DailyLateFee.String())
	assert.Equal(t, 3, m.Policy.DueSoonDays)
	assert.Equal(t, 7, m.DefaultBorrowDays)
	assert.Equal(t, 21, m.MaxBorrowDays)

	loc, err := opts.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("LIBRARY_PORTAL_LOG_LEVEL", "warn")
	t.Setenv("LIBRARY_PORTAL_BASE_URL", "http://env.example/api")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("base-url", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--base-url", "http://flag.example/api"}))

	opts, err := Load("testdata/config.toml", flags)
	require.NoError(t, err)
	assert.Equal(t, "http://flag.example/api", opts.BaseURL)
	assert.Equal(t, "warn", opts.LogLevel)
}

func TestValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	valid := func(t *testing.T) *Options {
		o, err := Load("", nil)
		require.NoError(t, err)
		return o
	}

	tests := []struct {
		name string
		edit func(*Options)
	}{
		{"relative base url", func(o *Options) { o.BaseURL = "/api" }},
		{"unknown log level", func(o *Options) { o.LogLevel = "chatty" }},
		{"negative fee", func(o *Options) { o.DailyLateFee = "-1" }},
		{"garbage fee", func(o *Options) { o.DailyLateFee = "cheap" }},
		{"default above max", func(o *Options) { o.DefaultBorrowDays = 40 }},
		{"zero burst", func(o *Options) { o.RequestBurst = 0 }},
		{"unknown zone", func(o *Options) { o.TimeZone = "Mars/Olympus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid(t)
			tt.edit(o)
			assert.Error(t, o.Validate())
		})
	}
}
