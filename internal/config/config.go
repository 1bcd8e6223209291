// Package config holds run settings unmarshalled from viper (see main.go).
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidErrors is returned for a num_errors argument that is not a
// non-negative integer.
var ErrInvalidErrors = errors.New("number of errors must be a non-negative integer")

// Config is a batch trimming run. The four positional arguments fill
// InputFile, OutputFile, Adaptor and NumErrors; the rest come from flags,
// ADAPTORTRIM_* environment variables or a config file.
type Config struct {
	InputFile  string `mapstructure:"-"`
	OutputFile string `mapstructure:"-"`
	Adaptor    string `mapstructure:"-"`
	NumErrors  int    `mapstructure:"-"`

	// trim the left side of the adaptor instead of the right
	Left bool `mapstructure:"left"`

	// worker goroutines
	Threads int `mapstructure:"threads"`

	// records handed to a worker at once
	BatchSize int `mapstructure:"batch-size"`

	// drop trimmed reads whose mean Phred+33 error rate reaches this;
	// 0 keeps every read
	MaxError float64 `mapstructure:"max-error"`

	// output format, fasta or fastq
	Format string `mapstructure:"format"`

	// FASTA sequence line width
	Width int `mapstructure:"width"`

	// suppress the run summary
	Quiet bool `mapstructure:"quiet"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("left", false)
	v.SetDefault("threads", runtime.NumCPU())
	v.SetDefault("batch-size", 10000)
	v.SetDefault("max-error", 0.0)
	v.SetDefault("format", "fasta")
	v.SetDefault("width", 60)
	v.SetDefault("quiet", false)
}

// New decodes v and the positional arguments into a Config.
func New(v *viper.Viper, args []string) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("unable to decode config: %w", err)
	}
	if len(args) != 4 {
		return c, fmt.Errorf("expected 4 arguments, got %d", len(args))
	}

	c.InputFile, c.OutputFile = args[0], args[1]
	c.Adaptor = strings.TrimSpace(args[2])
	if c.Adaptor == "" {
		return c, errors.New("adaptor sequence must not be empty")
	}

	n, err := strconv.Atoi(args[3])
	if err != nil || n < 0 {
		return c, fmt.Errorf("%w, got %q", ErrInvalidErrors, args[3])
	}
	c.NumErrors = n

	if c.Threads < 1 {
		c.Threads = 1
	}
	if c.BatchSize < 1 {
		c.BatchSize = 1
	}
	if c.MaxError < 0 {
		return c, fmt.Errorf("max-error must not be negative, got %g", c.MaxError)
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format != "fasta" && c.Format != "fastq" {
		return c, fmt.Errorf("unsupported output format %q", c.Format)
	}
	if c.Width < 1 {
		c.Width = 60
	}
	return c, nil
}
