package log

import (
	"fmt"
	"strings"
)

// Config declares a logger.
type Config struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"` // text or json
	// Outputs are "console" (default), "null" or a file path.
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty" toml:"outputs,omitempty"`
	// Redact replaces the values of these keys with [REDACTED].
	Redact []string `json:"redact,omitempty" yaml:"redact,omitempty" toml:"redact,omitempty"`
	// SampleInitial and SampleThereafter enable per-message sampling when
	// SampleThereafter > 0.
	SampleInitial    int  `json:"sampleInitial,omitempty" yaml:"sampleInitial,omitempty" toml:"sampleInitial,omitempty"`
	SampleThereafter int  `json:"sampleThereafter,omitempty" yaml:"sampleThereafter,omitempty" toml:"sampleThereafter,omitempty"`
	ShowCaller       bool `json:"showCaller,omitempty" yaml:"showCaller,omitempty" toml:"showCaller,omitempty"`
}

// ApplyConfig builds a Logger from cfg. A nil cfg yields the defaults.
func ApplyConfig(cfg *Config) (Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := []LoggerOption{WithLevel(level)}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		opts = append(opts, WithFormatter(&TextFormatter{ShowCaller: cfg.ShowCaller}))
	case "json":
		opts = append(opts, WithFormatter(&JSONFormatter{ShowCaller: cfg.ShowCaller}))
	default:
		return nil, fmt.Errorf("log: unknown format %q", cfg.Format)
	}

	for _, o := range cfg.Outputs {
		switch o {
		case "", "console":
			opts = append(opts, WithOutput(NewConsoleOutput()))
		case "null":
			opts = append(opts, WithOutput(NullOutput{}))
		default:
			fo, err := NewFileOutput(o)
			if err != nil {
				return nil, fmt.Errorf("log: output %q: %w", o, err)
			}
			opts = append(opts, WithOutput(fo))
		}
	}

	l := NewLogger(opts...).(*BaseLogger)
	l.handler = l.handler.withRedactions(cfg.Redact).withSampler(cfg.SampleInitial, cfg.SampleThereafter)
	return l, nil
}
