// Package config provides configuration loading and validation for flo.
//
// It uses Viper to load settings from files and environment variables, and
// godotenv to pick up .env files.
//
// # Usage
//
//	settings, err := config.Load()
//
// Environment variables override file values using the FLO_ prefix with
// underscore-separated paths (e.g., FLO_PARALLEL_WORKERS).
package config
