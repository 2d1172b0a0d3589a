package checkpoint

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	pebblestore "github.com/rzbill/seqid/internal/storage/pebble"
)

var keyPrefix = []byte("ckpt/")

// ErrCorrupt is returned for records that do not decode.
var ErrCorrupt = errors.New("checkpoint: corrupt record")

// Mark is one scheme's persisted high-water tick.
type Mark struct {
	Scheme  string
	Tick    int64
	SavedAt time.Time
}

// Store reads and writes marks in a pebble database.
type Store struct {
	db  *pebblestore.DB
	now func() time.Time
}

// NewStore wraps db.
func NewStore(db *pebblestore.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func markKey(scheme string) []byte {
	return append(append([]byte(nil), keyPrefix...), scheme...)
}

// record layout: tick (8 bytes, big endian) | savedAt unix ms (8 bytes)
func encodeMark(tick int64, savedAt time.Time) []byte {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], uint64(tick))
	binary.BigEndian.PutUint64(buf[8:], uint64(savedAt.UnixMilli()))
	return buf
}

func decodeMark(scheme string, b []byte) (Mark, error) {
	if len(b) != 16 {
		return Mark{}, fmt.Errorf("%s: %d bytes: %w", scheme, len(b), ErrCorrupt)
	}
	return Mark{
		Scheme:  scheme,
		Tick:    int64(binary.BigEndian.Uint64(b[:8])),
		SavedAt: time.UnixMilli(int64(binary.BigEndian.Uint64(b[8:]))),
	}, nil
}

// Load returns the mark for scheme. ok is false when none was saved.
func (s *Store) Load(scheme string) (m Mark, ok bool, err error) {
	b, err := s.db.Get(markKey(scheme))
	if errors.Is(err, pebblestore.ErrNotFound) {
		return Mark{}, false, nil
	}
	if err != nil {
		return Mark{}, false, err
	}
	m, err = decodeMark(scheme, b)
	return m, err == nil, err
}

// LoadAll returns every saved mark keyed by scheme.
func (s *Store) LoadAll() (map[string]Mark, error) {
	out := make(map[string]Mark)
	err := s.db.ScanPrefix(keyPrefix, func(k, v []byte) error {
		scheme := string(k[len(keyPrefix):])
		m, err := decodeMark(scheme, v)
		if err != nil {
			return err
		}
		out[scheme] = m
		return nil
	})
	return out, err
}

// Save raises the stored marks to ticks in one batch. A tick at or below
// the stored mark leaves it untouched, so marks never move backwards.
// It returns the schemes whose mark changed.
func (s *Store) Save(ticks map[string]int64) ([]string, error) {
	existing, err := s.LoadAll()
	if err != nil {
		return nil, err
	}

	b := s.db.NewBatch()
	defer b.Close()
	now := s.now()
	var changed []string
	for scheme, tick := range ticks {
		if m, ok := existing[scheme]; ok && tick <= m.Tick {
			continue
		}
		if err := b.Set(markKey(scheme), encodeMark(tick, now), nil); err != nil {
			return nil, err
		}
		changed = append(changed, scheme)
	}
	if len(changed) == 0 {
		return nil, nil
	}
	if err := s.db.CommitBatch(b); err != nil {
		return nil, fmt.Errorf("checkpoint: commit: %w", err)
	}
	return changed, nil
}
