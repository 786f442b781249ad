package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	DBPath        string           `json:"db_path"`
	MigrationsDir string           `json:"migrations_dir"`
	JWTSecret     string           `json:"jwt_secret"`
	Port          int              `json:"port"`
	JWTTTLHours   int              `json:"jwt_ttl_hours"`
	CORSOrigins   []string         `json:"cors_origins"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Admin         AdminConfig      `json:"admin"`
	AI            AIConfig         `json:"ai"`
	Chat          ChatConfig       `json:"chat"`
	FileStore     FileStoreConfig  `json:"file_store"`
}

type AdminConfig struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AIConfig struct {
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
	Data     interface{} `json:"data"`
}

type ChatConfig struct {
	RateLimitMs            int `json:"rate_limit_ms"`
	AnonymousRetentionDays int `json:"anonymous_retention_days"`
}

type FileStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Chat.AnonymousRetentionDays == 0 {
		cfg.Chat.AnonymousRetentionDays = 30
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
	}
	return &cfg, nil
}
