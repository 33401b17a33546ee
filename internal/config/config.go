package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config keeps runtime settings for the engine.
type Config struct {
	DatabaseURL string
	Timezone    string
	SweepTime   string // HH:MM, local to Timezone
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Timezone:    strings.TrimSpace(os.Getenv("TIMEZONE")),
		SweepTime:   strings.TrimSpace(os.Getenv("SWEEP_TIME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "taskgrid.db"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Tokyo"
	}
	if cfg.SweepTime == "" {
		cfg.SweepTime = "04:00"
	}

	if err := validateTime(cfg.SweepTime); err != nil {
		return cfg, fmt.Errorf("SWEEP_TIME: %w", err)
	}

	return cfg, nil
}

func validateTime(raw string) error {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return fmt.Errorf("expected HH:MM, got %q", raw)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour in %q", raw)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid minute in %q", raw)
	}
	return nil
}
