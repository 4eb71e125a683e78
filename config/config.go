// Package config contains the configuration of the iso8601 command line tool
// and server.
package config

import (
	_ "embed"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/jamespfennell/iso8601/internal/decode"
	"github.com/jamespfennell/iso8601/internal/encode"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

//go:embed iso8601.yml
var SampleConfig string

type Config struct {
	Port     int
	LogLevel string `yaml:"logLevel"`
	// Workers is the number of goroutines used by batch conversion.
	Workers int
	// Location is the IANA name of the zone treated as local time. Empty
	// means the zone of the process.
	Location string
	// Format is applied over the default encoding options.
	Format      encode.Patch `yaml:"format"`
	Compression Compression
}

func NewConfigWithDefaults() *Config {
	return &Config{
		Port:     8080,
		LogLevel: "info",
		Workers:  4,
	}
}

func NewConfig(b []byte) (*Config, error) {
	c := NewConfigWithDefaults()
	err := yaml.UnmarshalStrict(b, c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the config file as a YAML iso8601 config: %w", err)
	}
	if _, err := c.LocationParsed(); err != nil {
		return nil, err
	}
	if c.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return c, nil
}

func (c *Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "Error while marshalling config to YAML."
	}
	return string(b)
}

func (c *Config) LogLevelParsed() logrus.Level {
	l, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return l
}

func (c *Config) LocationParsed() (*time.Location, error) {
	if c.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("unknown location %q: %w", c.Location, err)
	}
	return loc, nil
}

// Options returns the encoding options: the defaults with Format applied.
func (c *Config) Options() encode.Options {
	return encode.DefaultOptions().Apply(c.Format)
}

func (c *Config) Encoder() encode.Encoder {
	loc, err := c.LocationParsed()
	if err != nil {
		loc = time.Local
	}
	return encode.Encoder{Options: c.Options(), Location: loc}
}

func (c *Config) Decoder() decode.Decoder {
	loc, err := c.LocationParsed()
	if err != nil {
		loc = time.Local
	}
	return decode.Decoder{Location: loc}
}
