// Marquee - Content Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config loads and validates the Marquee server configuration.

# Configuration Sources

Configuration is layered with koanf, later layers overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - An optional YAML file: CONFIG_PATH, then config.yaml, config.yml,
    /etc/marquee/config.yaml
  - Environment variables mapped through an explicit table

Unmapped environment variables are ignored.

# Environment Variables

HTTP server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT: Per-request timeouts (default: 15s)
  - HTTP_SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)

Artifacts:
  - ARTIFACT_BACKEND: files or badger (default: files)
  - ARTIFACT_DIR: Directory holding index.bin, encoder.json, metadata.parquet
  - MODEL_PATH: Explicit index file path
  - TRANSFORMER_PATH: Explicit encoder file path
  - META_PATH: Explicit metadata file path (.parquet or .csv)
  - BADGER_DIR: Badger directory when ARTIFACT_BACKEND=badger

Recommendations:
  - RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K, SUGGEST_K
  - FUZZY_CUTOFF: Minimum fuzzy title score (default: 0.3)
  - SUGGEST_CACHE_SIZE, SUGGEST_CACHE_TTL

Reload:
  - RELOAD_INTERVAL: Periodic artifact reload, 0 disables (default: 0)
  - RELOAD_TIMEOUT: Budget for one reload (default: 2m)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

Security:
  - CORS_ORIGINS: Comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("invalid configuration")
	}
*/
package config
