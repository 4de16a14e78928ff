package elvas

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/kolkov/elvas/internal/eval"
	"github.com/kolkov/elvas/internal/log"
	"github.com/kolkov/elvas/internal/types"
)

// Config holds configuration options for script execution.
type Config struct {
	// OutputDelim joins print arguments when the script declares no
	// OUTPUT_DELIM (default: "").
	OutputDelim string `yaml:"output_delim"`

	// Precision is the number of digits printed (default: 6).
	Precision *int `yaml:"precision"`

	// Notation is "scientific" (default) or "general".
	Notation string `yaml:"notation"`

	// Physics registers the vacuum stability function library
	// (default: true).
	Physics *bool `yaml:"physics"`

	// Log is read from configuration files; the command line turns it
	// into Logger.
	Log LogConfig `yaml:"log"`

	// Functions are registered after the builtins and the physics
	// library, so they may replace either.
	Functions []Function `yaml:"-"`

	// Logger receives interpreter events. The zero Logger discards them.
	Logger log.Logger `yaml:"-"`
}

// LogConfig names the log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Function is a host function made callable from scripts.
type Function struct {
	Name  string
	Arity int // Fixed argument count, or Variadic(n)
	Fn    func(args []float64) (float64, error)
}

// Variadic returns the arity of a function accepting n or more arguments.
func Variadic(n int) int { return eval.Variadic(n) }

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Precision == nil {
		p := types.DefaultPrecision
		c.Precision = &p
	}
	if c.Physics == nil {
		on := true
		c.Physics = &on
	}
}

// format returns the number format selected by c.
func (c *Config) format() (types.Format, error) {
	n, err := types.ParseNotation(c.Notation)
	if err != nil {
		return types.Format{}, err
	}
	f := types.Format{Notation: n, Precision: types.DefaultPrecision}
	if c.Precision != nil {
		if *c.Precision < 0 {
			return types.Format{}, fmt.Errorf("negative precision %d", *c.Precision)
		}
		f.Precision = *c.Precision
	}
	return f, nil
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseConfig decodes a YAML configuration. Unknown keys are rejected.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.UnmarshalWithOptions(data, &c, yaml.Strict()); err != nil {
		return nil, err
	}
	if _, err := c.format(); err != nil {
		return nil, err
	}
	return &c, nil
}
