// Package config loads the foliar configuration from defaults, an optional
// YAML file and FOLIAR_ environment variables, in increasing precedence.
//
// Keys are dotted section paths, so lspace.max_coefficient is overridden
// by FOLIAR_LSPACE_MAX_COEFFICIENT.
package config

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/foliar/disorder"
	"github.com/katalvlaran/foliar/group"
	"github.com/katalvlaran/foliar/sat"
	"github.com/katalvlaran/foliar/search"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FOLIAR"

// Log configures the logger.
type Log struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// LSpace bounds the L-space search.
type LSpace struct {
	MaxIter            int     `mapstructure:"max_iter" yaml:"max_iter"`
	MaxCoefficient     int     `mapstructure:"max_coefficient" yaml:"max_coefficient"`
	MaxSegments        int     `mapstructure:"max_segments" yaml:"max_segments"`
	MaxDrills          int     `mapstructure:"max_drills" yaml:"max_drills"`
	CurveOffset        int     `mapstructure:"curve_offset" yaml:"curve_offset"`
	OnlyTrueHyperbolic bool    `mapstructure:"only_true_hyperbolic" yaml:"only_true_hyperbolic"`
	MinVolume          float64 `mapstructure:"min_volume" yaml:"min_volume"`
}

// Disorder bounds the non-orderability certifier.
type Disorder struct {
	BallRadius      int     `mapstructure:"ball_radius" yaml:"ball_radius"`
	MaxRadius       int     `mapstructure:"max_radius" yaml:"max_radius"`
	MinBitsAccuracy int     `mapstructure:"min_bits_accuracy" yaml:"min_bits_accuracy"`
	Density         float64 `mapstructure:"density" yaml:"density"`
	Track           bool    `mapstructure:"track" yaml:"track"`
}

// Foliation bounds the triangulations walked by the foliation searches.
type Foliation struct {
	RandMax int `mapstructure:"rand_max" yaml:"rand_max"`
	MaxSize int `mapstructure:"max_size" yaml:"max_size"`
}

// SAT selects the solver backend.
type SAT struct {
	Backend string `mapstructure:"backend" yaml:"backend"`
}

// Batch sizes the batch runner.
type Batch struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Config is the whole configuration.
type Config struct {
	Log       Log       `mapstructure:"log" yaml:"log"`
	LSpace    LSpace    `mapstructure:"lspace" yaml:"lspace"`
	Disorder  Disorder  `mapstructure:"disorder" yaml:"disorder"`
	Foliation Foliation `mapstructure:"foliation" yaml:"foliation"`
	SAT       SAT       `mapstructure:"sat" yaml:"sat"`
	Batch     Batch     `mapstructure:"batch" yaml:"batch"`
}

// SetDefaults installs the default of every key on v.
func SetDefaults(v *viper.Viper) {
	d := search.DefaultConfig()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("lspace.max_iter", d.MaxIter)
	v.SetDefault("lspace.max_coefficient", d.MaxCoefficient)
	v.SetDefault("lspace.max_segments", d.MaxSegments)
	v.SetDefault("lspace.max_drills", d.MaxDrills)
	v.SetDefault("lspace.curve_offset", d.CurveOffset)
	v.SetDefault("lspace.only_true_hyperbolic", d.OnlyTrueHyperbolic)
	v.SetDefault("lspace.min_volume", d.MinVolume)

	v.SetDefault("disorder.ball_radius", d.BallRadius)
	v.SetDefault("disorder.max_radius", d.MaxRadius)
	v.SetDefault("disorder.min_bits_accuracy", group.DefaultBits)
	v.SetDefault("disorder.density", disorder.DefaultDensity)
	v.SetDefault("disorder.track", false)

	v.SetDefault("foliation.rand_max", d.RandMax)
	v.SetDefault("foliation.max_size", d.MaxSize)

	v.SetDefault("sat.backend", sat.BackendGini)

	v.SetDefault("batch.workers", d.Workers)
}

// NewViper returns a viper instance with defaults and environment
// overrides wired, reading path when it is not empty.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	}

	return v, nil
}

// Load reads the configuration from path (optional) and the environment.
func Load(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}

	return FromViper(v)
}

// FromViper unmarshals and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks the settings no search validates by itself.
func (c *Config) Validate() error {
	if c.Disorder.Density <= 0 || c.Disorder.Density > 1 {
		return errors.Wrapf(disorder.ErrBadDensity, "config: disorder.density=%v", c.Disorder.Density)
	}
	if c.Disorder.MinBitsAccuracy < 1 {
		return errors.Newf("config: disorder.min_bits_accuracy must be positive, got %d", c.Disorder.MinBitsAccuracy)
	}
	if _, err := sat.NewSolver(c.SAT.Backend, 0); err != nil {
		return errors.Wrap(err, "config: sat.backend")
	}

	return c.Search().Validate()
}

// Search converts c into the bounds of package search. Logger and metrics
// are left for the caller to set.
func (c *Config) Search() search.Config {
	return search.Config{
		MaxIter:            c.LSpace.MaxIter,
		MaxCoefficient:     c.LSpace.MaxCoefficient,
		MaxSegments:        c.LSpace.MaxSegments,
		MaxDrills:          c.LSpace.MaxDrills,
		CurveOffset:        c.LSpace.CurveOffset,
		OnlyTrueHyperbolic: c.LSpace.OnlyTrueHyperbolic,
		MinVolume:          c.LSpace.MinVolume,
		BallRadius:         c.Disorder.BallRadius,
		MaxRadius:          c.Disorder.MaxRadius,
		Bits:               c.Disorder.MinBitsAccuracy,
		Density:            c.Disorder.Density,
		Track:              c.Disorder.Track,
		RandMax:            c.Foliation.RandMax,
		MaxSize:            c.Foliation.MaxSize,
		Backend:            c.SAT.Backend,
		Workers:            c.Batch.Workers,
	}
}

// WriteYAML writes the effective configuration.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return errors.Wrap(err, "config: encode")
	}

	return errors.Wrap(enc.Close(), "config: encode")
}
