package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline_config.json")

	cfg, created, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !created {
		t.Fatal("expected default config to be created")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if cfg.StoreID != 70 || cfg.StoreName != "AFC Urgent Care" {
		t.Fatalf("unexpected defaults: %d %q", cfg.StoreID, cfg.StoreName)
	}
	if !cfg.Steps.Filter.Enabled || cfg.Steps.TicketMerge.Enabled {
		t.Fatalf("unexpected default step toggles: %+v", cfg.Steps)
	}
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline_config.json")

	if _, _, err := LoadConfig(path); err != nil {
		t.Fatal(err)
	}
	cfg, created, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if created {
		t.Fatal("second load must not recreate the file")
	}
	if cfg.SEO.TitleLimit != 70 || cfg.SEO.KeywordLimit != 500 {
		t.Fatalf("limits did not survive the round trip: %+v", cfg.SEO)
	}
}

func TestLoadConfigClampsLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline_config.json")
	raw := `{"storeId": 5, "seo": {"titleLimit": 0, "keywordLimit": -1}, "testProductLimit": 0}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.StoreID != 5 {
		t.Fatalf("StoreID = %d, want 5", cfg.StoreID)
	}
	if cfg.SEO.TitleLimit != 70 || cfg.SEO.KeywordLimit != 500 || cfg.TestProductLimit != 1 {
		t.Fatalf("limits not clamped: %+v testLimit=%d", cfg.SEO, cfg.TestProductLimit)
	}
}

func TestLoadConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline_config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
