// Package config merges defaults, an optional YAML file, a .env file and
// environment variables into the CLI settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the CLI settings. Flags override these values.
type Config struct {
	DBPath         string `yaml:"db"`
	LogLevel       string `yaml:"log_level"`
	LogSink        string `yaml:"log_sink"`
	Mailbox        string `yaml:"mailbox"`
	Encoding       string `yaml:"encoding"`
	Sort           string `yaml:"sort"`
	MaxDepth       int    `yaml:"max_depth"`
	GroupBySubject bool   `yaml:"group_by_subject"`
	// Path is the config file that was read, if any.
	Path string `yaml:"-"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath:         filepath.Join(home, ".mailthread", "mailthread.db"),
		LogLevel:       "warn",
		LogSink:        "stderr",
		Mailbox:        "inbox",
		Sort:           "date",
		MaxDepth:       1024,
		GroupBySubject: true,
	}
}

// Load builds the settings. path names a YAML file; when empty,
// $MAILTHREAD_CONFIG or ~/.mailthread/config.yaml is used if present.
// Variables from ./.env are loaded without replacing ones already set.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = os.Getenv("MAILTHREAD_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".mailthread", "config.yaml")
		}
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
			cfg.Path = path
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.DBPath = getenv("MAILTHREAD_DB", cfg.DBPath)
	cfg.LogLevel = getenv("MAILTHREAD_LOG_LEVEL", cfg.LogLevel)
	cfg.LogSink = getenv("MAILTHREAD_LOG_SINK", cfg.LogSink)
	cfg.Mailbox = getenv("MAILTHREAD_MAILBOX", cfg.Mailbox)
	cfg.Encoding = getenv("MAILTHREAD_ENCODING", cfg.Encoding)
	cfg.Sort = getenv("MAILTHREAD_SORT", cfg.Sort)
	cfg.MaxDepth = getenvInt("MAILTHREAD_MAX_DEPTH", cfg.MaxDepth)
	cfg.GroupBySubject = getenvBool("MAILTHREAD_GROUP_BY_SUBJECT", cfg.GroupBySubject)

	return cfg, nil
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
