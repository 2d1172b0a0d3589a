package runtime

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rzbill/seqid/internal/checkpoint"
	cfgpkg "github.com/rzbill/seqid/internal/config"
	"github.com/rzbill/seqid/internal/metrics"
	pebblestore "github.com/rzbill/seqid/internal/storage/pebble"
	"github.com/rzbill/seqid/pkg/id"
	logpkg "github.com/rzbill/seqid/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	Config cfgpkg.Config
	Logger logpkg.Logger
	// Fsync applies to the checkpoint store.
	Fsync pebblestore.FsyncMode
	// Prometheus registry; a fresh one with Go and process collectors when nil.
	Prometheus *prometheus.Registry
	// ClockFactory overrides id.NewSystemClock, for tests.
	ClockFactory func(id.Unit) id.Clock
}

// Runtime owns the scheme registry and its supporting state for a single
// process: metrics, and the checkpoint store when enabled.
type Runtime struct {
	config   cfgpkg.Config
	logger   logpkg.Logger
	registry *id.Registry
	prom     *prometheus.Registry
	metrics  *metrics.Metrics

	db       *pebblestore.DB
	recorder *checkpoint.Recorder
}

// Open builds the registry and, when checkpoints are enabled, opens the
// store under DataDir and blocks until every clock has passed its stored
// mark (bounded by checkpoint.maxWait).
func Open(ctx context.Context, opts Options) (*Runtime, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logpkg.NewLogger(logpkg.WithOutput(logpkg.NullOutput{}))
	}
	prom := opts.Prometheus
	if prom == nil {
		prom = prometheus.NewRegistry()
		prom.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	m := metrics.New(prom)

	regOpts := []id.RegistryOption{
		id.WithRegistryObserver(id.MultiObserver{m, logObserver{l: logger.WithComponent("generator")}}),
		id.WithOffsetMinutes(cfg.TZOffsetMinutes),
		id.WithDefaultScheme(cfg.DefaultScheme),
	}
	if opts.ClockFactory != nil {
		regOpts = append(regOpts, id.WithClockFactory(opts.ClockFactory))
	}
	reg, err := id.NewRegistry(regOpts...)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{config: cfg, logger: logger, registry: reg, prom: prom, metrics: m}
	if !cfg.Checkpoint.Enabled {
		return rt, nil
	}

	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = cfgpkg.DefaultDataDir()
	}
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir: filepath.Join(dataDir, "store"),
		Fsync:   opts.Fsync,
		Metrics: m,
		Logger:  logger.WithComponent("pebble"),
	})
	if err != nil {
		return nil, err
	}
	store := checkpoint.NewStore(db)
	if err := checkpoint.Guard(ctx, store, reg, cfg.Checkpoint.MaxWait.Std(), logger.WithComponent("checkpoint")); err != nil {
		_ = db.Close()
		return nil, err
	}
	rt.db = db
	rt.recorder = checkpoint.NewRecorder(store, reg, cfg.Checkpoint.Interval.Std(), logger.WithComponent("checkpoint"))
	return rt, nil
}

// RunCheckpoints flushes marks until ctx is done. It returns immediately
// when checkpoints are disabled.
func (r *Runtime) RunCheckpoints(ctx context.Context) error {
	if r.recorder == nil {
		return nil
	}
	return r.recorder.Run(ctx)
}

// Close flushes a final checkpoint and closes the store.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.recorder.Flush()
	if cerr := r.db.Close(); err == nil {
		err = cerr
	}
	r.db = nil
	return err
}

// CheckHealth reports whether the runtime can serve.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.registry == nil {
		return errors.New("registry not initialized")
	}
	if r.config.Checkpoint.Enabled {
		return r.db.Ping()
	}
	return nil
}

func (r *Runtime) Registry() *id.Registry           { return r.registry }
func (r *Runtime) Metrics() *metrics.Metrics        { return r.metrics }
func (r *Runtime) Prometheus() *prometheus.Registry { return r.prom }
func (r *Runtime) Logger() logpkg.Logger            { return r.logger }
func (r *Runtime) Config() cfgpkg.Config            { return r.config }

// logObserver reports soft generation conditions in the log.
type logObserver struct{ l logpkg.Logger }

func (o logObserver) CounterWrapped(scheme string, tick int64) {
	o.l.Warn("offset wrapped within one tick; identifiers may repeat",
		logpkg.Str("scheme", scheme), logpkg.Int64("tick", tick))
}

func (o logObserver) TickRepeated(scheme string, tick int64) {
	o.l.Debug("tick repeated", logpkg.Str("scheme", scheme), logpkg.Int64("tick", tick))
}

func (logObserver) Generated(string) {}
