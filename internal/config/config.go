package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/rzbill/seqid/pkg/id"
	logpkg "github.com/rzbill/seqid/pkg/log"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	HTTPAddr        string        `json:"httpAddr" yaml:"httpAddr" toml:"httpAddr"`
	GRPCAddr        string        `json:"grpcAddr" yaml:"grpcAddr" toml:"grpcAddr"`
	DataDir         string        `json:"dataDir" yaml:"dataDir" toml:"dataDir"`
	DefaultScheme   string        `json:"defaultScheme" yaml:"defaultScheme" toml:"defaultScheme"`
	TZOffsetMinutes int           `json:"tzOffsetMinutes" yaml:"tzOffsetMinutes" toml:"tzOffsetMinutes"`
	Checkpoint      Checkpoint    `json:"checkpoint" yaml:"checkpoint" toml:"checkpoint"`
	Log             logpkg.Config `json:"log" yaml:"log" toml:"log"`
}

// Checkpoint controls the restart guard that persists each scheme's
// high-water tick.
type Checkpoint struct {
	Enabled  bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Interval Duration `json:"interval" yaml:"interval" toml:"interval"`
	// MaxWait bounds how long startup waits for the clock to pass a stored
	// tick.
	MaxWait Duration `json:"maxWait" yaml:"maxWait" toml:"maxWait"`
}

// Duration is a time.Duration written as "1s", "250ms" in config files.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Default returns built-in defaults.
func Default() Config {
	return Config{
		HTTPAddr:      ":8080",
		GRPCAddr:      ":50051",
		DefaultScheme: id.Milli36.Name(),
		Checkpoint: Checkpoint{
			Enabled:  true,
			Interval: Duration(time.Second),
			MaxWait:  Duration(5 * time.Second),
		},
		Log: logpkg.Config{Level: "info", Format: "text"},
	}
}

// Load reads configuration from a JSON, YAML or TOML file, chosen by
// extension. Unknown keys are rejected. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(b), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.DefaultScheme != "" {
		known := false
		for _, s := range id.BuiltinSchemes() {
			known = known || s.Name() == c.DefaultScheme
		}
		if !known {
			return fmt.Errorf("defaultScheme %q: %w", c.DefaultScheme, id.ErrUnknownScheme)
		}
	}
	if c.TZOffsetMinutes < -23*60 || c.TZOffsetMinutes > 23*60 {
		return fmt.Errorf("tzOffsetMinutes %d outside ±1380", c.TZOffsetMinutes)
	}
	if c.Checkpoint.Enabled && c.Checkpoint.Interval <= 0 {
		return errors.New("checkpoint.interval must be positive")
	}
	if c.Checkpoint.MaxWait < 0 {
		return errors.New("checkpoint.maxWait must not be negative")
	}
	if _, err := logpkg.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
