package topology

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"textbetti/internal/domain"
)

// Diameters returns [delta, 2·delta, …, steps·delta].
func Diameters(delta float64, steps int) ([]float64, error) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) || delta <= 0 {
		return nil, fmt.Errorf("%w: delta must be a positive number, got %v", ErrInvalidDiameter, delta)
	}
	if steps <= 0 {
		return nil, fmt.Errorf("%w: step count must be positive, got %d", ErrInvalidDiameter, steps)
	}
	out := make([]float64, steps)
	for k := 1; k <= steps; k++ {
		out[k-1] = delta * float64(k)
	}
	return out, nil
}

// Sweeper rebuilds a TokenSpace for every diameter of a sweep.
type Sweeper struct {
	cfg     Config
	workers int
	logger  *zap.Logger
}

// SweepOption configures a Sweeper.
type SweepOption func(*Sweeper)

// WithWorkers runs up to n diameters concurrently. n <= 1 keeps the sweep sequential.
func WithWorkers(n int) SweepOption {
	return func(s *Sweeper) { s.workers = n }
}

// WithLogger sets a logger for per-diameter debug output.
func WithLogger(l *zap.Logger) SweepOption {
	return func(s *Sweeper) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSweeper creates a sweeper building every complex with cfg.
func NewSweeper(cfg Config, opts ...SweepOption) *Sweeper {
	s := &Sweeper{cfg: cfg, workers: 1, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run returns one point per diameter, in input order. Cancellation is
// checked between diameters, never inside one.
func (s *Sweeper) Run(ctx context.Context, tokens []domain.Token, metric domain.Metric, diameters []float64) ([]domain.SweepPoint, error) {
	if s.workers > 1 && len(diameters) > 1 {
		return s.runParallel(ctx, tokens, metric, diameters)
	}
	points := make([]domain.SweepPoint, 0, len(diameters))
	for _, d := range diameters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := s.point(tokens, metric, d)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *Sweeper) runParallel(ctx context.Context, tokens []domain.Token, metric domain.Metric, diameters []float64) ([]domain.SweepPoint, error) {
	points := make([]domain.SweepPoint, len(diameters))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	s.logger.Debug("sweep dispatching diameters",
		zap.Int("diameters", len(diameters)), zap.Int("workers", s.workers))
	for i, d := range diameters {
		i, d := i, d
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := s.point(tokens, metric, d)
			if err != nil {
				return err
			}
			points[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func (s *Sweeper) point(tokens []domain.Token, metric domain.Metric, d float64) (domain.SweepPoint, error) {
	ts, err := NewTokenSpace(tokens, metric, d, s.cfg)
	if err != nil {
		return domain.SweepPoint{}, err
	}
	s.logger.Debug("sweep diameter done",
		zap.Float64("diameter", d),
		zap.Int("vertices", ts.Vertices()),
		zap.Int("edges", len(ts.Edges)),
		zap.Int("triangles", len(ts.Triangles)),
		zap.Int("b0", ts.B0),
		zap.Int("b1", ts.B1))
	return ts.Point(), nil
}
