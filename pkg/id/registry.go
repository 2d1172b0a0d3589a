package id

import "fmt"

type registryOptions struct {
	schemes       []*Scheme
	clockFor      func(Unit) Clock
	observer      Observer
	offsetMinutes int
	defaultScheme string
}

// RegistryOption configures NewRegistry.
type RegistryOption func(*registryOptions)

// WithSchemes replaces the built-in schemes.
func WithSchemes(schemes ...*Scheme) RegistryOption {
	return func(o *registryOptions) { o.schemes = schemes }
}

// WithClockFactory sets how clocks are built per scheme unit. The default is
// NewSystemClock.
func WithClockFactory(f func(Unit) Clock) RegistryOption {
	return func(o *registryOptions) { o.clockFor = f }
}

// WithRegistryObserver sets the Observer of every generator.
func WithRegistryObserver(obs Observer) RegistryOption {
	return func(o *registryOptions) { o.observer = obs }
}

// WithOffsetMinutes sets the zone offset Describe renders at.
func WithOffsetMinutes(m int) RegistryOption {
	return func(o *registryOptions) { o.offsetMinutes = m }
}

// WithDefaultScheme picks the scheme returned by Default.
func WithDefaultScheme(name string) RegistryOption {
	return func(o *registryOptions) { o.defaultScheme = name }
}

// Registry owns one Issuer, Generator and State per scheme. Build it once at
// startup and pass it to every call site.
type Registry struct {
	issuers map[string]*Issuer
	names   []string
	def     string
}

// NewRegistry builds issuers for the built-in schemes (or WithSchemes).
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	o := registryOptions{
		schemes:  BuiltinSchemes(),
		clockFor: func(u Unit) Clock { return NewSystemClock(u) },
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.schemes) == 0 {
		return nil, fmt.Errorf("registry needs at least one scheme: %w", ErrUnknownScheme)
	}

	r := &Registry{issuers: make(map[string]*Issuer, len(o.schemes))}
	for _, s := range o.schemes {
		if _, dup := r.issuers[s.Name()]; dup {
			return nil, fmt.Errorf("scheme %q registered twice: %w", s.Name(), ErrBadLayout)
		}
		gen := NewGenerator(s, o.clockFor(s.Unit()), NewState(), WithObserver(o.observer))
		r.issuers[s.Name()] = NewIssuer(gen, o.offsetMinutes)
		r.names = append(r.names, s.Name())
	}

	r.def = r.names[0]
	if o.defaultScheme != "" {
		if _, ok := r.issuers[o.defaultScheme]; !ok {
			return nil, fmt.Errorf("default %q: %w", o.defaultScheme, ErrUnknownScheme)
		}
		r.def = o.defaultScheme
	}
	return r, nil
}

// Lookup returns the issuer for a scheme name.
func (r *Registry) Lookup(name string) (*Issuer, error) {
	iss, ok := r.issuers[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScheme)
	}
	return iss, nil
}

// Default returns the configured default issuer.
func (r *Registry) Default() *Issuer { return r.issuers[r.def] }

// Names lists scheme names in registration order.
func (r *Registry) Names() []string { return append([]string(nil), r.names...) }
