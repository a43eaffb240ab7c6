package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"textbetti/internal/domain"
	"textbetti/internal/topology"
)

// AnalysisConfig holds sweep parameters and resource caps.
type AnalysisConfig struct {
	SplitMode      string  `yaml:"split_mode"`
	Delta          float64 `yaml:"delta"`
	Steps          int     `yaml:"steps"`
	B1Formula      string  `yaml:"b1_formula"`
	RankTolerance  float64 `yaml:"rank_tolerance"`
	Workers        int     `yaml:"workers"`
	MaxTokens      int     `yaml:"max_tokens"`
	MaxSimplices   int     `yaml:"max_simplices"`
	MaxMatrixCells int     `yaml:"max_matrix_cells"`
}

// NormalizerConfig selects the word normalizer.
type NormalizerConfig struct {
	Type     string `yaml:"type"`
	Language string `yaml:"language"`
}

// EmbedderConfig selects how tokens are turned into vectors.
type EmbedderConfig struct {
	Type string `yaml:"type"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `yaml:"format"`
	Plot   bool   `yaml:"plot"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Debug      bool             `yaml:"debug"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Embedder   EmbedderConfig   `yaml:"embedder"`
	Output     OutputConfig     `yaml:"output"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyConfigDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDefault tries ./textbetti.yaml first, then ~/.config/textbetti/config.yaml.
// If neither exists, it writes defaults to ~/.config/textbetti/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "textbetti.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultUserConfigPath returns ~/.config/textbetti/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textbetti", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

// Validate rejects values no component can run with.
func (c *AppConfig) Validate() error {
	if _, err := domain.ParseSplitMode(c.Analysis.SplitMode); err != nil {
		return fmt.Errorf("analysis.split_mode: %w", err)
	}
	if c.Analysis.Delta <= 0 {
		return fmt.Errorf("analysis.delta must be positive, got %v", c.Analysis.Delta)
	}
	if c.Analysis.Steps <= 0 {
		return fmt.Errorf("analysis.steps must be positive, got %d", c.Analysis.Steps)
	}
	if _, err := topology.ParseFormula(c.Analysis.B1Formula); err != nil {
		return fmt.Errorf("analysis.b1_formula: %w", err)
	}
	switch c.Normalizer.Type {
	case "identity", "fold", "snowball":
	default:
		return fmt.Errorf("unknown normalizer: %s", c.Normalizer.Type)
	}
	switch c.Embedder.Type {
	case "count", "tfidf":
	default:
		return fmt.Errorf("unknown embedder: %s", c.Embedder.Type)
	}
	switch c.Output.Format {
	case "table", "json", "csv":
	default:
		return fmt.Errorf("unknown output format: %s", c.Output.Format)
	}
	return nil
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Analysis.SplitMode == "" {
		cfg.Analysis.SplitMode = string(domain.SplitParagraph)
	}
	if cfg.Analysis.Delta == 0 {
		cfg.Analysis.Delta = 0.5
	}
	if cfg.Analysis.Steps == 0 {
		cfg.Analysis.Steps = 5
	}
	if cfg.Analysis.B1Formula == "" {
		cfg.Analysis.B1Formula = string(topology.FormulaSource)
	}
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = 1
	}
	if cfg.Analysis.MaxTokens == 0 {
		cfg.Analysis.MaxTokens = 2000
	}
	if cfg.Analysis.MaxSimplices == 0 {
		cfg.Analysis.MaxSimplices = 200000
	}
	// 4e6 float64 cells keeps each dense ∂ near 32 MB and its SVD in seconds.
	if cfg.Analysis.MaxMatrixCells == 0 {
		cfg.Analysis.MaxMatrixCells = 4_000_000
	}
	if cfg.Normalizer.Type == "" {
		cfg.Normalizer.Type = "snowball"
	}
	if cfg.Normalizer.Type == "snowball" && cfg.Normalizer.Language == "" {
		cfg.Normalizer.Language = "russian"
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "count"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "table"
	}
}
