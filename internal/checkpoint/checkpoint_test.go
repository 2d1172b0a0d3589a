package checkpoint

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pebblestore "github.com/rzbill/seqid/internal/storage/pebble"
	"github.com/rzbill/seqid/pkg/id"
	logpkg "github.com/rzbill/seqid/pkg/log"
)

func newStore(t *testing.T) (*Store, *pebblestore.DB) {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeAlways})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), db
}

func quietLogger() logpkg.Logger {
	return logpkg.NewLogger(logpkg.WithLevel(logpkg.ErrorLevel), logpkg.WithOutput(logpkg.NullOutput{}))
}

func TestStoreSaveLoad(t *testing.T) {
	s, _ := newStore(t)
	saved := time.UnixMilli(1734422400000)
	s.now = func() time.Time { return saved }

	_, ok, err := s.Load("milli36")
	require.NoError(t, err)
	assert.False(t, ok)

	changed, err := s.Save(map[string]int64{"milli36": 1734422400000, "micro26": 1734422400240900})
	require.NoError(t, err)
	sort.Strings(changed)
	assert.Equal(t, []string{"micro26", "milli36"}, changed)

	m, ok, err := s.Load("milli36")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1734422400000), m.Tick)
	assert.True(t, saved.Equal(m.SavedAt))

	all, err := s.LoadAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, int64(1734422400240900), all["micro26"].Tick)
}

func TestStoreNeverMovesBackwards(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Save(map[string]int64{"milli36": 2000})
	require.NoError(t, err)

	changed, err := s.Save(map[string]int64{"milli36": 1500})
	require.NoError(t, err)
	assert.Empty(t, changed)
	changed, err = s.Save(map[string]int64{"milli36": 2000})
	require.NoError(t, err)
	assert.Empty(t, changed)

	m, _, err := s.Load("milli36")
	require.NoError(t, err)
	assert.Equal(t, int64(2000), m.Tick)

	changed, err = s.Save(map[string]int64{"milli36": 2001})
	require.NoError(t, err)
	assert.Equal(t, []string{"milli36"}, changed)
}

func TestStoreCorruptRecord(t *testing.T) {
	s, db := newStore(t)
	require.NoError(t, db.Set(markKey("milli36"), []byte("short")))

	_, _, err := s.Load("milli36")
	require.ErrorIs(t, err, ErrCorrupt)
	_, err = s.LoadAll()
	require.ErrorIs(t, err, ErrCorrupt)
}

type stepClock struct{ tick int64 }

func (c *stepClock) Now() int64 { return c.tick }

func TestWaitPast(t *testing.T) {
	clock := &stepClock{tick: 100}
	var slept []time.Duration
	sleep := func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		clock.tick += int64(d / time.Millisecond)
		return nil
	}

	waited, err := waitPast(context.Background(), clock, id.Millisecond, 50, time.Second, sleep)
	require.NoError(t, err)
	assert.Zero(t, waited)
	assert.Empty(t, slept)

	waited, err = waitPast(context.Background(), clock, id.Millisecond, 104, time.Second, sleep)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, waited)
	assert.Equal(t, int64(105), clock.tick)

	_, err = waitPast(context.Background(), clock, id.Millisecond, 10_000, time.Second, sleep)
	require.ErrorIs(t, err, ErrClockBehind)
}

func TestWaitPastCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := waitPast(ctx, &stepClock{tick: 1}, id.Microsecond, 5_000_000, 10*time.Second, sleepCtx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGuard(t *testing.T) {
	s, _ := newStore(t)
	reg, err := id.NewRegistry()
	require.NoError(t, err)
	now := id.NewSystemClock(id.Millisecond).Now()

	_, err = s.Save(map[string]int64{"milli36": now + 3, "micro15": 1})
	require.NoError(t, err)
	start := time.Now()
	require.NoError(t, Guard(context.Background(), s, reg, time.Second, quietLogger()))
	assert.GreaterOrEqual(t, time.Since(start), 2*time.Millisecond)

	_, err = s.Save(map[string]int64{"milli36": now + int64(time.Hour/time.Millisecond)})
	require.NoError(t, err)
	err = Guard(context.Background(), s, reg, 10*time.Millisecond, quietLogger())
	require.ErrorIs(t, err, ErrClockBehind)
	assert.Contains(t, err.Error(), "milli36")
}

func TestRecorderFlush(t *testing.T) {
	s, _ := newStore(t)
	clock := &stepClock{tick: 7000}
	reg, err := id.NewRegistry(id.WithClockFactory(func(id.Unit) id.Clock { return clock }))
	require.NoError(t, err)
	rec := NewRecorder(s, reg, time.Hour, quietLogger())

	require.NoError(t, rec.Flush())
	all, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, all, "nothing issued yet")

	iss, err := reg.Lookup("milli36")
	require.NoError(t, err)
	iss.Generate()
	require.NoError(t, rec.Flush())

	m, ok, err := s.Load("milli36")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(7000), m.Tick)
	_, ok, err = s.Load("micro26")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecorderRunFlushesOnCancel(t *testing.T) {
	s, _ := newStore(t)
	clock := &stepClock{tick: 42}
	reg, err := id.NewRegistry(id.WithClockFactory(func(id.Unit) id.Clock { return clock }))
	require.NoError(t, err)
	iss, err := reg.Lookup("micro26")
	require.NoError(t, err)
	iss.Generate()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewRecorder(s, reg, time.Hour, quietLogger()).Run(ctx) }()
	cancel()
	require.NoError(t, <-done)

	m, ok, err := s.Load("micro26")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(42), m.Tick)
}
