package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "data/ratings.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "data/ratings.db")
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if !cfg.SeedMovies {
		t.Error("SeedMovies should default to true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SEED_MOVIES", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, ":memory:")
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.SeedMovies {
		t.Error("SeedMovies should be false")
	}
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing session secret",
			env:  map[string]string{},
		},
		{
			name: "short session secret",
			env:  map[string]string{"SESSION_SECRET": "too-short"},
		},
		{
			name: "invalid port",
			env: map[string]string{
				"SESSION_SECRET": "0123456789abcdef0123456789abcdef",
				"PORT":           "70000",
			},
		},
		{
			name: "bcrypt cost below minimum",
			env: map[string]string{
				"SESSION_SECRET": "0123456789abcdef0123456789abcdef",
				"BCRYPT_COST":    "3",
			},
		},
		{
			name: "zero session ttl",
			env: map[string]string{
				"SESSION_SECRET": "0123456789abcdef0123456789abcdef",
				"SESSION_TTL":    "0s",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// t.Setenv also isolates: values are restored after the subtest.
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatal("Load() should have failed validation")
			}
		})
	}
}
