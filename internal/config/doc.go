// Package config handles YAML configuration loading with environment variable substitution.
//
// Configuration files support ${VAR} syntax for environment variable interpolation.
// After parsing, GBCE_* environment variables override individual fields
// (for example GBCE_FEED_URL or GBCE_MARKET_VWSP_WINDOW).
package config
