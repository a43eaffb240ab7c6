package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"textbetti/internal/domain"
	"textbetti/internal/topology"
)

var (
	// ErrInvalidParameter reports a request rejected before any computation.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrTooManyTokens reports a text split into more units than the configured cap.
	ErrTooManyTokens = errors.New("too many tokens")
)

// DefaultSteps is the number of diameters swept when a request leaves Steps unset.
const DefaultSteps = 5

// Request describes one analysis.
type Request struct {
	Text    string
	Mode    domain.SplitMode
	Delta   float64
	Steps   int
	Formula topology.Formula
}

// Result is the Betti curve of one text.
type Result struct {
	ID         string              `json:"id"`
	Mode       domain.SplitMode    `json:"mode"`
	Formula    topology.Formula    `json:"formula"`
	Vectorizer string              `json:"vectorizer"`
	Tokens     int                 `json:"tokens"`
	Vocabulary int                 `json:"vocabulary"`
	Points     []domain.SweepPoint `json:"points"`
}

// Limits bound the work of a single request. Zero disables a limit.
type Limits struct {
	MaxTokens      int
	MaxSimplices   int
	MaxMatrixCells int
}

// AnalysisService runs tokenize → vectorize → sweep for a text.
type AnalysisService struct {
	splitter   domain.Splitter
	vectorizer domain.Vectorizer
	metric     domain.Metric
	limits     Limits
	tolerance  float64
	workers    int
	logger     *zap.Logger
}

// Option configures an AnalysisService.
type Option func(*AnalysisService)

// WithLimits sets token, simplex and boundary-matrix caps.
func WithLimits(l Limits) Option {
	return func(s *AnalysisService) { s.limits = l }
}

// WithRankTolerance sets the singular-value cutoff for boundary ranks.
func WithRankTolerance(tol float64) Option {
	return func(s *AnalysisService) { s.tolerance = tol }
}

// WithWorkers sets how many diameters are computed concurrently.
func WithWorkers(n int) Option {
	return func(s *AnalysisService) { s.workers = n }
}

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(s *AnalysisService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewAnalysisService assembles a service from its collaborators.
func NewAnalysisService(splitter domain.Splitter, vectorizer domain.Vectorizer, metric domain.Metric, opts ...Option) *AnalysisService {
	s := &AnalysisService{
		splitter:   splitter,
		vectorizer: vectorizer,
		metric:     metric,
		workers:    1,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks a request and fills defaults. It never touches the text.
func Validate(req *Request) error {
	if req.Steps == 0 {
		req.Steps = DefaultSteps
	}
	if req.Steps < 0 {
		return fmt.Errorf("%w: step count must be a positive integer, got %d", ErrInvalidParameter, req.Steps)
	}
	if math.IsNaN(req.Delta) || math.IsInf(req.Delta, 0) || req.Delta <= 0 {
		return fmt.Errorf("%w: delta must be a positive number, got %v", ErrInvalidParameter, req.Delta)
	}
	if _, err := domain.ParseSplitMode(string(req.Mode)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	f, err := topology.ParseFormula(string(req.Formula))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	req.Formula = f
	return nil
}

// Analyze computes the Betti curve of req.Text over [delta, …, steps·delta].
func (s *AnalysisService) Analyze(ctx context.Context, req Request) (*Result, error) {
	if err := Validate(&req); err != nil {
		return nil, err
	}
	diameters, err := topology.Diameters(req.Delta, req.Steps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	id := uuid.NewString()
	log := s.logger.With(zap.String("analysis_id", id))

	tokens, vocab, err := s.splitter.Split(req.Text, req.Mode)
	if err != nil {
		return nil, err
	}
	if s.limits.MaxTokens > 0 && len(tokens) > s.limits.MaxTokens {
		return nil, fmt.Errorf("%w: %d units exceed the limit of %d", ErrTooManyTokens, len(tokens), s.limits.MaxTokens)
	}
	if err := s.vectorizer.Vectorize(tokens, vocab); err != nil {
		return nil, err
	}
	log.Debug("text tokenized",
		zap.String("mode", string(req.Mode)),
		zap.Int("tokens", len(tokens)),
		zap.Int("vocabulary", vocab.Len()),
		zap.String("vectorizer", s.vectorizer.Name()))

	sweeper := topology.NewSweeper(topology.Config{
		Formula:        req.Formula,
		Tolerance:      s.tolerance,
		MaxSimplices:   s.limits.MaxSimplices,
		MaxMatrixCells: s.limits.MaxMatrixCells,
	}, topology.WithWorkers(s.workers), topology.WithLogger(log))
	points, err := sweeper.Run(ctx, tokens, s.metric, diameters)
	if err != nil {
		return nil, err
	}
	return &Result{
		ID:         id,
		Mode:       req.Mode,
		Formula:    req.Formula,
		Vectorizer: s.vectorizer.Name(),
		Tokens:     len(tokens),
		Vocabulary: vocab.Len(),
		Points:     points,
	}, nil
}

// LoadText reads and concatenates the files matched by paths. Each path
// may be a glob; a path matching nothing is read literally.
func LoadText(paths []string) (string, error) {
	var b strings.Builder
	read := 0
	for _, p := range paths {
		matches, err := filepath.Glob(p)
		if err != nil {
			return "", err
		}
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			data, err := os.ReadFile(m)
			if err != nil {
				return "", err
			}
			if read > 0 {
				b.WriteString("\n")
			}
			b.Write(data)
			read++
		}
	}
	if read == 0 {
		return "", fmt.Errorf("no input files given")
	}
	return b.String(), nil
}
