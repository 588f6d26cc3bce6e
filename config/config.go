// Package config loads run configuration from YAML.
//
// A configuration file looks like:
//
//	syndrome_rate: 16
//	shots: 2048
//	seed: 7
//	noise:
//	  error_rate: 0.001
//	  measure: 0.01
//	compression: zstd
//
// Missing keys keep their defaults; unknown keys are rejected.
package config

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/iceberg/errs"
	"github.com/arloliu/iceberg/format"
	"github.com/arloliu/iceberg/noise"
	"github.com/arloliu/iceberg/schedule"
)

// DefaultShots is the shot count used when none is configured.
const DefaultShots = 1024

// Noise selects the simulator noise model. ErrorRate applies to every operation kind;
// a per-kind rate overrides it for that kind.
type Noise struct {
	ErrorRate   *float64 `yaml:"error_rate,omitempty"`
	SingleQubit *float64 `yaml:"single_qubit,omitempty"`
	TwoQubit    *float64 `yaml:"two_qubit,omitempty"`
	Measure     *float64 `yaml:"measure,omitempty"`
}

// Config is the configuration of one compile, simulate and decode run.
type Config struct {
	SyndromeRate    int                    `yaml:"syndrome_rate"`
	Shots           int                    `yaml:"shots"`
	Seed            uint64                 `yaml:"seed"`
	Parallelism     int                    `yaml:"parallelism,omitempty"`
	DisableBarriers bool                   `yaml:"disable_barriers,omitempty"`
	Noise           Noise                  `yaml:"noise,omitempty"`
	Compression     format.CompressionType `yaml:"compression"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		SyndromeRate: schedule.DefaultRate,
		Shots:        DefaultShots,
		Compression:  format.CompressionZstd,
	}
}

// Load reads a YAML configuration from r on top of Default. An empty document yields
// the defaults.
func Load(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, errs.ErrInvalidParameter) {
			return Config{}, err
		}

		return Config{}, errs.MalformedInput("parse config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile reads a YAML configuration file. Errors opening the file keep the underlying
// os error, so errors.Is(err, os.ErrNotExist) still reports a missing file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()

	return Load(f)
}

// Write encodes cfg as YAML.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}

	return enc.Close()
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.SyndromeRate < 1 {
		return errs.InvalidParameter("syndrome_rate must be >= 1, got %d", c.SyndromeRate)
	}
	if c.Shots < 0 {
		return errs.InvalidParameter("shots must be >= 0, got %d", c.Shots)
	}
	if c.Parallelism < 0 {
		return errs.InvalidParameter("parallelism must be >= 0, got %d", c.Parallelism)
	}
	if !c.Compression.Valid() {
		return errs.InvalidParameter("unknown compression type %d", uint8(c.Compression))
	}
	_, err := c.NoiseModel()

	return err
}

// NoiseModel returns the configured noise model, noise.Ideal when no rate is set.
func (c Config) NoiseModel() (noise.Model, error) {
	base := 0.0
	if c.Noise.ErrorRate != nil {
		base = *c.Noise.ErrorRate
	}

	pick := func(p *float64) float64 {
		if p != nil {
			return *p
		}

		return base
	}

	return noise.Parametric(pick(c.Noise.SingleQubit), pick(c.Noise.TwoQubit), pick(c.Noise.Measure))
}
