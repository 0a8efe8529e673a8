package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	HistoryLimit      int           `mapstructure:"history_limit" yaml:"history_limit"`
	EphemeralTTL      time.Duration `mapstructure:"ephemeral_ttl" yaml:"ephemeral_ttl"`
	TypingTTL         time.Duration `mapstructure:"typing_ttl" yaml:"typing_ttl"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		HistoryLimit:      100,
		EphemeralTTL:      10 * time.Second,
		TypingTTL:         3 * time.Second,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.HistoryLimit != 0 {
		c.HistoryLimit = other.HistoryLimit
	}
	if other.EphemeralTTL != 0 {
		c.EphemeralTTL = other.EphemeralTTL
	}
	if other.TypingTTL != 0 {
		c.TypingTTL = other.TypingTTL
	}
}
