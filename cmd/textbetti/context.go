package main

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"textbetti/internal/chunker"
	"textbetti/internal/config"
	"textbetti/internal/embedding"
	"textbetti/internal/lemma"
	"textbetti/internal/logging"
	"textbetti/internal/metric"
	"textbetti/internal/service"
)

const configEnv = "TEXTBETTI_CONFIG"

type commandContext struct {
	configFlag *string
	debugFlag  *bool

	configOnce sync.Once
	config     *config.AppConfig
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, debugFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, debugFlag: debugFlag}
}

func (c *commandContext) ensureConfig() (*config.AppConfig, error) {
	c.configOnce.Do(func() {
		path := ""
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if path == "" {
			path = strings.TrimSpace(os.Getenv(configEnv))
		}
		if path == "" {
			c.config, c.configPath, c.configErr = config.LoadDefault()
			return
		}
		c.configPath = path
		c.config, c.configErr = config.Load(path)
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cfg *config.AppConfig) *zap.Logger {
	debug := cfg.Debug
	if c.debugFlag != nil && *c.debugFlag {
		debug = true
	}
	return logging.NewOrNop(debug)
}

// buildService assembles the analysis pipeline described by cfg.
func buildService(cfg *config.AppConfig, logger *zap.Logger) (*service.AnalysisService, error) {
	norm, err := lemma.New(cfg.Normalizer.Type, cfg.Normalizer.Language)
	if err != nil {
		return nil, err
	}
	vec, err := embedding.New(cfg.Embedder.Type)
	if err != nil {
		return nil, err
	}
	logger.Debug("pipeline assembled",
		zap.String("normalizer", norm.Name()),
		zap.String("vectorizer", vec.Name()),
		zap.Int("workers", cfg.Analysis.Workers))
	return service.NewAnalysisService(
		chunker.NewMarkerChunker(norm),
		vec,
		metric.Angular,
		service.WithLimits(service.Limits{
			MaxTokens:      cfg.Analysis.MaxTokens,
			MaxSimplices:   cfg.Analysis.MaxSimplices,
			MaxMatrixCells: cfg.Analysis.MaxMatrixCells,
		}),
		service.WithRankTolerance(cfg.Analysis.RankTolerance),
		service.WithWorkers(cfg.Analysis.Workers),
		service.WithLogger(logger),
	), nil
}
