package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Environment string

	// AWS configuration
	AWSRegion     string
	SnapshotTable string

	// Snapshot-store configuration
	TreeFolderID      string
	LocalSnapshotPath string

	// Sync behavior
	SyncMaxAttempts int

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		AWSRegion:     getEnv("AWS_REGION", "ap-south-1"),
		SnapshotTable: getEnv("SNAPSHOT_TABLE", "kintree-snapshots"),

		TreeFolderID:      getEnv("TREE_FOLDER_ID", ""),
		LocalSnapshotPath: getEnv("LOCAL_SNAPSHOT_PATH", ""),

		SyncMaxAttempts: getEnvInt("SYNC_MAX_ATTEMPTS", 3),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.SnapshotTable == "" {
		return fmt.Errorf("SNAPSHOT_TABLE is required")
	}
	if c.TreeFolderID == "" {
		return fmt.Errorf("TREE_FOLDER_ID is required")
	}
	if c.SyncMaxAttempts < 1 {
		return fmt.Errorf("SYNC_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}

// IsDevelopment returns true in development environments
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
