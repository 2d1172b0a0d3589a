package id

import (
	"math/big"
	"sync"
)

// State is the tiebreak state of one generator: the last tick it saw and the
// offset handed out for that tick. The zero value is ready to use.
type State struct {
	mu       sync.Mutex
	lastTick int64
	counter  uint64
}

// NewState returns a State at {0, 0}.
func NewState() *State { return &State{} }

// Snapshot returns the last tick and counter.
func (s *State) Snapshot() (lastTick int64, counter uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTick, s.counter
}

// Observer is told about soft conditions during generation. Calls happen
// after the state lock is released.
type Observer interface {
	// CounterWrapped fires when the offset wraps to 0 within one tick. IDs
	// issued for that tick are no longer guaranteed unique.
	CounterWrapped(scheme string, tick int64)
	// TickRepeated fires when a scheme without an offset field sees the same
	// tick twice; both calls return the same value.
	TickRepeated(scheme string, tick int64)
	// Generated fires once per issued value.
	Generated(scheme string)
}

// NopObserver ignores everything.
type NopObserver struct{}

func (NopObserver) CounterWrapped(string, int64) {}
func (NopObserver) TickRepeated(string, int64)   {}
func (NopObserver) Generated(string)             {}

// MultiObserver fans every call out to each member in order.
type MultiObserver []Observer

func (m MultiObserver) CounterWrapped(scheme string, tick int64) {
	for _, o := range m {
		o.CounterWrapped(scheme, tick)
	}
}

func (m MultiObserver) TickRepeated(scheme string, tick int64) {
	for _, o := range m {
		o.TickRepeated(scheme, tick)
	}
}

func (m MultiObserver) Generated(scheme string) {
	for _, o := range m {
		o.Generated(scheme)
	}
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithObserver sets the Observer; the default is NopObserver.
func WithObserver(o Observer) GeneratorOption {
	return func(g *Generator) {
		if o != nil {
			g.observer = o
		}
	}
}

// Generator produces values for one scheme. It is safe for concurrent use;
// all calls observe a single total order through the injected State.
type Generator struct {
	scheme     *Scheme
	clock      Clock
	state      *State
	observer   Observer
	offsetMask uint64
}

// NewGenerator builds a generator. The state must not be shared with a
// generator of a different scheme.
func NewGenerator(s *Scheme, clock Clock, state *State, opts ...GeneratorOption) *Generator {
	g := &Generator{
		scheme:   s,
		clock:    clock,
		state:    state,
		observer: NopObserver{},
	}
	if s.HasOffset() {
		g.offsetMask = fieldMask(s.OffsetBits())
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Next returns the next packed value, ready to encode.
func (g *Generator) Next() *big.Int {
	tick, offset := g.NextFields()
	return g.scheme.Compose(tick, offset)
}

// NextFields advances the state and returns the tick and offset of the new
// value. The offset is always 0 for schemes without an offset field.
func (g *Generator) NextFields() (int64, uint64) {
	var wrapped, repeated bool

	st := g.state
	st.mu.Lock()
	tick := g.clock.Now()
	switch {
	case tick != st.lastTick:
		// Any change, including a step backwards, starts a fresh tick.
		st.lastTick = tick
		st.counter = 0
	case g.offsetMask != 0:
		st.counter = (st.counter + 1) & g.offsetMask
		wrapped = st.counter == 0
	default:
		repeated = true
	}
	offset := st.counter
	st.mu.Unlock()

	if wrapped {
		g.observer.CounterWrapped(g.scheme.name, tick)
	}
	if repeated {
		g.observer.TickRepeated(g.scheme.name, tick)
	}
	g.observer.Generated(g.scheme.name)
	return tick, offset
}

func (g *Generator) Scheme() *Scheme { return g.scheme }
func (g *Generator) Clock() Clock    { return g.clock }
func (g *Generator) State() *State   { return g.state }
