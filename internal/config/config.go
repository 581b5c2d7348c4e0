package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth; empty disables API authentication.
	DocmapAPIKey string

	// Project to document.
	ProjectDir string
	SiteFile   string

	// Export database
	DBPath string

	// Tree building
	CacheSize int
	MaxDepth  int

	// Site build worker pool
	WorkerCount        int
	MaxQueueSize       int
	MaxConcurrentPages int
	JobTTL             time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		DocmapAPIKey: os.Getenv("DOCMAP_API_KEY"),

		ProjectDir: envOr("DOCMAP_PROJECT_DIR", "."),
		SiteFile:   envOr("DOCMAP_SITE_FILE", "docmap.yaml"),

		DBPath: envOr("DOCMAP_DB_PATH", "docmap.db"),

		CacheSize: envInt("DOCMAP_CACHE_SIZE", 1000),
		MaxDepth:  envInt("DOCMAP_MAX_DEPTH", -1),

		WorkerCount:        envInt("DOCMAP_WORKER_COUNT", 4),
		MaxQueueSize:       envInt("DOCMAP_MAX_QUEUE_SIZE", 32),
		MaxConcurrentPages: envInt("DOCMAP_MAX_CONCURRENT_PAGES", 4),
		JobTTL:             time.Duration(envInt("DOCMAP_JOB_TTL_MINUTES", 60)) * time.Minute,
	}

	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1000
	}
	if cfg.MaxDepth < -1 {
		cfg.MaxDepth = -1
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 32
	}
	if cfg.MaxConcurrentPages <= 0 {
		cfg.MaxConcurrentPages = 4
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ProjectDir == "" {
		return fmt.Errorf("DOCMAP_PROJECT_DIR is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
