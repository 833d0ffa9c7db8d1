package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AppPort != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.AppPort)
	}
	if cfg.OpenAIModel == "" || cfg.EmbeddingModel == "" {
		t.Error("model defaults missing")
	}
	if cfg.ResultTTL != time.Hour {
		t.Errorf("expected default TTL 1h, got %s", cfg.ResultTTL)
	}
}

func TestValidateRequiresOpenAIKey(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(nil); err == nil {
		t.Fatal("expected an error without an OpenAI key")
	}
	cfg.OpenAIAPIKey = "sk-test"
	if err := cfg.Validate(nil); err != nil {
		t.Fatalf("optional keys must only warn: %v", err)
	}
}
