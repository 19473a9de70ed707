package search

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/katalvlaran/foliar/disorder"
	"github.com/katalvlaran/foliar/metrics"
	"github.com/katalvlaran/foliar/orient"
)

// Config carries every search bound. The zero value is not useful; start
// from DefaultConfig.
type Config struct {
	// L-space certification
	MaxIter            int
	MaxCoefficient     int
	MaxSegments        int
	MaxDrills          int
	CurveOffset        int
	OnlyTrueHyperbolic bool
	MinVolume          float64

	// Non-orderability
	BallRadius int
	MaxRadius  int
	Bits       int
	Density    float64
	Track      bool

	// Foliations
	RandMax int
	MaxSize int
	Backend string

	Workers int

	Log     *zap.Logger
	Metrics *metrics.Metrics
}

// DefaultConfig returns the bounds the searches were tuned with.
func DefaultConfig() Config {
	return Config{
		MaxIter:        25,
		MaxCoefficient: 17,
		MaxSegments:    6,
		MaxDrills:      10,
		MinVolume:      0.94,
		BallRadius:     3,
		MaxRadius:      5,
		Bits:           15,
		Density:        disorder.DefaultDensity,
		RandMax:        5,
		MaxSize:        25,
		Workers:        4,
		Log:            zap.NewNop(),
	}
}

// Validate rejects bounds no search can run with.
func (c Config) Validate() error {
	switch {
	case c.MaxCoefficient < 1, c.MaxSegments < 1, c.MaxDrills < 1:
		return errors.Newf("search: L-space bounds must be positive, got coefficient=%d segments=%d drills=%d",
			c.MaxCoefficient, c.MaxSegments, c.MaxDrills)
	case c.BallRadius < 1 || c.MaxRadius < c.BallRadius:
		return errors.Newf("search: need 1 <= ball_radius <= max_radius, got %d and %d", c.BallRadius, c.MaxRadius)
	case c.Workers < 1:
		return errors.Newf("search: workers must be positive, got %d", c.Workers)
	}

	return nil
}

func (c Config) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}

	return c.Log
}

func (c Config) orientOptions() []orient.Option {
	return []orient.Option{
		orient.WithBackend(c.Backend),
		orient.WithLogger(c.Log),
		orient.WithMetrics(c.Metrics),
	}
}

func (c Config) disorderOptions() []disorder.Option {
	opts := []disorder.Option{
		disorder.WithDensity(c.Density),
		disorder.WithLogger(c.Log),
		disorder.WithMetrics(c.Metrics),
	}
	if c.Track {
		opts = append(opts, disorder.WithTracking())
	}

	return opts
}

// Reason names the bound a search ran out of.
type Reason string

// Exhaustion reasons, named after the Config bound to raise.
const (
	ReasonMaxIter    Reason = "max_iter"
	ReasonDrillings  Reason = "max_drills"
	ReasonFillings   Reason = "max_coefficient"
	ReasonBallRadius Reason = "max_radius"
)

// Exhausted reports a search that ran out of a bounded resource. Retry is
// the Config to try again with.
type Exhausted struct {
	Reason Reason
	Retry  Config
}

func (e *Exhausted) Error() string { return fmt.Sprintf("search: exhausted %s", e.Reason) }

func exhausted(reason Reason, retry Config, hint string) error {
	return errors.WithHint(&Exhausted{Reason: reason, Retry: retry}, hint)
}
