package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// StepConfig controls a single pipeline step
type StepConfig struct {
	Enabled bool   `json:"enabled"`
	Input   string `json:"input,omitempty"`  // only the first step reads an external input
	Output  string `json:"output"`           // file (or zip) produced by the step
}

// Paths points at the asset trees and the working directory
type Paths struct {
	AssetsDir     string `json:"assetsDir"`
	ThumbnailsDir string `json:"thumbnailsDir"`
	OutputDir     string `json:"outputDir"`
}

// SEOConfig tunes title/keyword generation limits
type SEOConfig struct {
	TitleLimit    int      `json:"titleLimit"`    // max title length, default 70
	KeywordLimit  int      `json:"keywordLimit"`  // max keyword string length, default 500
	ExtraStopwords []string `json:"extraStopwords,omitempty"`
}

// MappingConfig tunes the destination-schema mapper
type MappingConfig struct {
	// Defaults overrides the built-in default value for a destination column.
	// The original migration had divergent default tables per storefront; they
	// live here instead of in code.
	Defaults map[string]string `json:"defaults,omitempty"`
}

// Steps holds the per-step configuration in pipeline order
type Steps struct {
	Filter      StepConfig `json:"filter"`
	SEO         StepConfig `json:"seo_generation"`
	Assets      StepConfig `json:"asset_linking"`
	TicketMerge StepConfig `json:"ticket_merge"`
	Mapping     StepConfig `json:"mdsf_mapping"`
	Packaging   StepConfig `json:"packaging"`
}

// Config is the full migration pipeline configuration
type Config struct {
	StoreID          int           `json:"storeId"`
	StoreName        string        `json:"storeName"`
	UseAutoThumbnail bool          `json:"useAutoThumbnail"`
	TestMode         bool          `json:"testMode"`
	TestProductLimit int           `json:"testProductLimit"`
	Force            bool          `json:"force"` // overwrite existing step outputs without reuse
	PricingCSV       string        `json:"pricingCsv,omitempty"`
	Paths            Paths         `json:"paths"`
	SEO              SEOConfig     `json:"seo"`
	Mapping          MappingConfig `json:"mapping"`
	Steps            Steps         `json:"steps"`
}

// DefaultConfig returns the configuration written on first run
func DefaultConfig() Config {
	return Config{
		StoreID:          70,
		StoreName:        "AFC Urgent Care",
		UseAutoThumbnail: true,
		TestMode:         false,
		TestProductLimit: 1,
		Paths: Paths{
			AssetsDir:     "static_assets",
			ThumbnailsDir: "static_assets_thumbnails",
			OutputDir:     "output",
		},
		SEO: SEOConfig{
			TitleLimit:   70,
			KeywordLimit: 500,
		},
		Steps: Steps{
			Filter:      StepConfig{Enabled: true, Input: "uStore_Complete_Export.csv", Output: "Store_Export.csv"},
			SEO:         StepConfig{Enabled: true, Output: "with_seo.csv"},
			Assets:      StepConfig{Enabled: true, Output: "with_assets.csv"},
			TicketMerge: StepConfig{Enabled: false, Output: "with_tickets.csv"},
			Mapping:     StepConfig{Enabled: true, Output: "mdsf_import.csv"},
			Packaging:   StepConfig{Enabled: true, Output: "MDSF_Import_Package.zip"},
		},
	}
}

// LoadConfig reads the config file, creating it with defaults when missing.
func LoadConfig(path string) (Config, bool, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		out, merr := json.MarshalIndent(cfg, "", "    ")
		if merr != nil {
			return cfg, false, merr
		}
		if werr := os.WriteFile(path, append(out, '\n'), 0644); werr != nil {
			return cfg, false, fmt.Errorf("failed to write default config: %w", werr)
		}
		return cfg, true, nil
	}
	if err != nil {
		return cfg, false, fmt.Errorf("failed to read config: %w", err)
	}

	// Loaded values take precedence over defaults
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.SEO.TitleLimit <= 0 {
		cfg.SEO.TitleLimit = 70
	}
	if cfg.SEO.KeywordLimit <= 0 {
		cfg.SEO.KeywordLimit = 500
	}
	if cfg.TestProductLimit <= 0 {
		cfg.TestProductLimit = 1
	}
	return cfg, false, nil
}
