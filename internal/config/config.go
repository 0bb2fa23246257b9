// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"net"
	"path/filepath"
	"strconv"
	"time"
)

// Artifact backends.
const (
	BackendFiles  = "files"
	BackendBadger = "badger"
)

// Default artifact file names, matching what marquee-train writes.
const (
	defaultIndexFile    = "index.bin"
	defaultEncoderFile  = "encoder.json"
	defaultMetadataFile = "metadata.parquet"
)

// Config holds all server configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Artifacts ArtifactsConfig `koanf:"artifacts"`
	Recommend RecommendConfig `koanf:"recommend"`
	Reload    ReloadConfig    `koanf:"reload"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ArtifactsConfig locates the trained artifacts.
//
// With the files backend, IndexPath, EncoderPath and MetadataPath override
// the default file names inside Dir. With the badger backend all three
// artifacts live in BadgerDir.
type ArtifactsConfig struct {
	Backend      string `koanf:"backend"`
	Dir          string `koanf:"dir"`
	IndexPath    string `koanf:"index_path"`
	EncoderPath  string `koanf:"encoder_path"`
	MetadataPath string `koanf:"metadata_path"`
	BadgerDir    string `koanf:"badger_dir"`
}

// ResolvedPaths returns the index, encoder and metadata file paths.
func (a ArtifactsConfig) ResolvedPaths() (indexPath, encoderPath, metadataPath string) {
	pick := func(explicit, name string) string {
		if explicit != "" {
			return explicit
		}
		return filepath.Join(a.Dir, name)
	}
	return pick(a.IndexPath, defaultIndexFile),
		pick(a.EncoderPath, defaultEncoderFile),
		pick(a.MetadataPath, defaultMetadataFile)
}

// RecommendConfig mirrors recommend.Config.
type RecommendConfig struct {
	DefaultK         int           `koanf:"default_k"`
	MaxK             int           `koanf:"max_k"`
	SuggestK         int           `koanf:"suggest_k"`
	FuzzyCutoff      float64       `koanf:"fuzzy_cutoff"`
	SuggestCacheSize int           `koanf:"suggest_cache_size"`
	SuggestCacheTTL  time.Duration `koanf:"suggest_cache_ttl"`
}

// ReloadConfig controls artifact reloads after startup.
type ReloadConfig struct {
	// Interval between periodic reloads. Zero disables the ticker; SIGHUP
	// still triggers a reload.
	Interval time.Duration `koanf:"interval"`

	// Timeout bounds a single reload.
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// SecurityConfig holds HTTP hardening settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, in that order of precedence.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
