package config

import (
	"os"
	"strconv"
	"time"
)

// FromEnv overlays SEQID_* environment variables onto cfg. Unparseable
// values are ignored.
func FromEnv(cfg *Config) {
	if v := os.Getenv("SEQID_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("SEQID_GRPC_ADDR"); v != "" {
		cfg.GRPCAddr = v
	}
	if v := os.Getenv("SEQID_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SEQID_DEFAULT_SCHEME"); v != "" {
		cfg.DefaultScheme = v
	}
	if v := os.Getenv("SEQID_TZ_OFFSET_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TZOffsetMinutes = n
		}
	}
	if v := os.Getenv("SEQID_CHECKPOINT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Checkpoint.Enabled = b
		}
	}
	if v := os.Getenv("SEQID_CHECKPOINT_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Checkpoint.Interval = Duration(d)
		}
	}
	if v := os.Getenv("SEQID_CHECKPOINT_MAX_WAIT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Checkpoint.MaxWait = Duration(d)
		}
	}
	if v := os.Getenv("SEQID_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SEQID_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
