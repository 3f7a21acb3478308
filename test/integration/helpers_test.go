//go:build integration

package integration

import (
	"testing"

	"github.com/joho/godotenv"

	"github.com/agenthands/factscreen/internal/config"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	_ = godotenv.Load("../../.env")

	cfg, err := config.Load("../../config/config.toml")
	if err != nil {
		t.Logf("Config not found, using default: %v", err)
		cfg = config.Default()
	}
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("invalid environment: %v", err)
	}
	return cfg
}
