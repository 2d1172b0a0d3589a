package checkpoint

import (
	"context"
	"time"

	"github.com/rzbill/seqid/pkg/id"
	logpkg "github.com/rzbill/seqid/pkg/log"
)

// Recorder copies generator high-water ticks into a Store.
type Recorder struct {
	store    *Store
	reg      *id.Registry
	interval time.Duration
	logger   logpkg.Logger
}

// NewRecorder builds a Recorder flushing every interval.
func NewRecorder(store *Store, reg *id.Registry, interval time.Duration, logger logpkg.Logger) *Recorder {
	return &Recorder{store: store, reg: reg, interval: interval, logger: logger}
}

// Flush saves the current tick of every scheme that has issued a value.
func (r *Recorder) Flush() error {
	ticks := make(map[string]int64)
	for _, name := range r.reg.Names() {
		iss, err := r.reg.Lookup(name)
		if err != nil {
			return err
		}
		tick, _ := iss.Generator().State().Snapshot()
		if tick != 0 {
			ticks[name] = tick
		}
	}
	if len(ticks) == 0 {
		return nil
	}
	changed, err := r.store.Save(ticks)
	if err != nil {
		return err
	}
	if len(changed) > 0 {
		r.logger.Debug("checkpoint saved", logpkg.Int("schemes", len(changed)))
	}
	return nil
}

// Run flushes every interval until ctx is done, then flushes once more.
func (r *Recorder) Run(ctx context.Context) error {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return r.Flush()
		case <-t.C:
			if err := r.Flush(); err != nil {
				r.logger.Error("checkpoint flush failed", logpkg.Err(err))
			}
		}
	}
}
