package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8091" {
		t.Errorf("expected default port 8091, got %s", cfg.Port)
	}
	if cfg.CacheSize != 1000 {
		t.Errorf("expected default cache size 1000, got %d", cfg.CacheSize)
	}
	if cfg.MaxDepth != -1 {
		t.Errorf("expected default max depth -1, got %d", cfg.MaxDepth)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected default worker count 4, got %d", cfg.WorkerCount)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DOCMAP_PROJECT_DIR", "/src/widgets")
	t.Setenv("DOCMAP_CACHE_SIZE", "50")
	t.Setenv("DOCMAP_MAX_DEPTH", "2")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.ProjectDir != "/src/widgets" {
		t.Errorf("expected project dir override, got %s", cfg.ProjectDir)
	}
	if cfg.CacheSize != 50 {
		t.Errorf("expected cache size 50, got %d", cfg.CacheSize)
	}
	if cfg.MaxDepth != 2 {
		t.Errorf("expected max depth 2, got %d", cfg.MaxDepth)
	}
}

func TestLoadClampsBadValues(t *testing.T) {
	t.Setenv("DOCMAP_CACHE_SIZE", "-5")
	t.Setenv("DOCMAP_MAX_DEPTH", "-7")
	t.Setenv("DOCMAP_WORKER_COUNT", "not-a-number")

	cfg := Load()

	if cfg.CacheSize != 1000 {
		t.Errorf("expected cache size clamped to 1000, got %d", cfg.CacheSize)
	}
	if cfg.MaxDepth != -1 {
		t.Errorf("expected max depth clamped to -1, got %d", cfg.MaxDepth)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected worker count fallback 4, got %d", cfg.WorkerCount)
	}
}

func TestValidateRequiresProjectDir(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for empty project dir")
	}
}
