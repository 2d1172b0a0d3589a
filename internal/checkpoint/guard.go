package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rzbill/seqid/pkg/id"
	logpkg "github.com/rzbill/seqid/pkg/log"
)

// ErrClockBehind means a scheme's clock did not pass its stored mark
// within the allowed wait.
var ErrClockBehind = errors.New("checkpoint: clock behind stored mark")

// Guard blocks until every scheme in reg reads a tick strictly greater than
// its stored mark. It gives up with ErrClockBehind once maxWait has been
// spent in total.
func Guard(ctx context.Context, store *Store, reg *id.Registry, maxWait time.Duration, logger logpkg.Logger) error {
	marks, err := store.LoadAll()
	if err != nil {
		return err
	}
	deadline := time.Now().Add(maxWait)
	for _, name := range reg.Names() {
		m, ok := marks[name]
		if !ok {
			continue
		}
		iss, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		waited, err := waitPast(ctx, iss.Generator().Clock(), iss.Scheme().Unit(), m.Tick, time.Until(deadline), sleepCtx)
		if err != nil {
			at, rerr := iss.Scheme().ReadableTick(m.Tick, 0)
			if rerr != nil {
				at = fmt.Sprintf("tick %d", m.Tick)
			}
			return fmt.Errorf("%s at %s: %w", name, at, err)
		}
		if waited > 0 {
			logger.Warn("waited for clock to pass checkpoint",
				logpkg.Str("scheme", name),
				logpkg.Int64("mark", m.Tick),
				logpkg.Dur("waited", waited))
		}
	}
	return nil
}

func waitPast(ctx context.Context, clock id.Clock, unit id.Unit, mark int64, budget time.Duration, sleep func(context.Context, time.Duration) error) (time.Duration, error) {
	var waited time.Duration
	for {
		now := clock.Now()
		if now > mark {
			return waited, nil
		}
		d := time.Duration(mark-now+1) * unit.Duration()
		if waited+d > budget {
			return waited, ErrClockBehind
		}
		if err := sleep(ctx, d); err != nil {
			return waited, err
		}
		waited += d
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
