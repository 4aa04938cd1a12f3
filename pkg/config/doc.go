// Package config loads env-tagged structs.
//
// Load reads .env files with github.com/joho/godotenv (missing files are
// ignored, variables already set win) and fills the struct with
// github.com/caarlos0/env.
//
//	type Config struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// WithEnvironment replaces the process environment, which keeps tests free
// of t.Setenv and lets the CLI pass flags through the same tags.
package config
