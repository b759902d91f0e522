package combine

import "fmt"

// Attribute names a header field checked by the compatibility resolver.
type Attribute string

// Attributes subject to per-call policies.
const (
	AttrNpts  Attribute = "npts"
	AttrNcmp  Attribute = "ncmp"
	AttrDelta Attribute = "delta"
	AttrBegin Attribute = "begin"
	AttrRef   Attribute = "ref"
	AttrLeven Attribute = "leven"
	AttrKind  Attribute = "iftype"
)

// Reaction selects how the resolver treats a mismatched attribute.
type Reaction int

const (
	// ReactError fails the whole combine call with a MismatchError.
	ReactError Reaction = iota

	// ReactWarn emits a Warning and proceeds.
	ReactWarn

	// ReactIgnore proceeds silently.
	ReactIgnore

	// ReactTruncate shrinks both payloads to the smaller extent. Valid for
	// npts and ncmp only.
	ReactTruncate

	// ReactPad grows both payloads to the larger extent with zeros. Valid
	// for npts and ncmp only.
	ReactPad
)

// String returns the option-style name of the reaction.
func (r Reaction) String() string {
	switch r {
	case ReactError:
		return "error"
	case ReactWarn:
		return "warn"
	case ReactIgnore:
		return "ignore"
	case ReactTruncate:
		return "truncate"
	case ReactPad:
		return "pad"
	default:
		return fmt.Sprintf("reaction(%d)", int(r))
	}
}

// Config holds the per-call policy set and engine settings. The zero value
// is not useful; start from DefaultConfig or ApplyOptions.
type Config struct {
	// Per-attribute reactions. Npts and Ncmp accept all five reactions;
	// the remaining attributes are advisory and accept error/warn/ignore.
	Npts  Reaction
	Ncmp  Reaction
	Delta Reaction
	Begin Reaction
	Ref   Reaction
	Leven Reaction
	Kind  Reaction

	// NewHeader selects the result header parent within each fold chain:
	// false inherits from the first operand, true from the last.
	NewHeader bool

	// DeltaTol is the relative tolerance for comparing sample intervals.
	// Zero demands exact equality.
	DeltaTol float64

	// WarningHandler, when non-nil, receives each Warning as it is emitted.
	// Warnings are returned from the call either way.
	WarningHandler func(Warning)
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default policy set: npts=error, ncmp=error,
// delta=error, begin=warn, ref=warn, leven=error, iftype=error, and header
// inheritance from the first operand.
func DefaultConfig() Config {
	return Config{
		Npts:  ReactError,
		Ncmp:  ReactError,
		Delta: ReactError,
		Begin: ReactWarn,
		Ref:   ReactWarn,
		Leven: ReactError,
		Kind:  ReactError,
	}
}

// WithNpts sets the reaction to differing sample counts.
func WithNpts(r Reaction) Option {
	return func(cfg *Config) { cfg.Npts = r }
}

// WithNcmp sets the reaction to differing component counts.
func WithNcmp(r Reaction) Option {
	return func(cfg *Config) { cfg.Ncmp = r }
}

// WithDelta sets the reaction to differing sample intervals.
func WithDelta(r Reaction) Option {
	return func(cfg *Config) { cfg.Delta = r }
}

// WithBegin sets the reaction to differing begin times.
func WithBegin(r Reaction) Option {
	return func(cfg *Config) { cfg.Begin = r }
}

// WithRef sets the reaction to differing reference epochs.
func WithRef(r Reaction) Option {
	return func(cfg *Config) { cfg.Ref = r }
}

// WithLeven sets the reaction to differing even-sampling flags.
func WithLeven(r Reaction) Option {
	return func(cfg *Config) { cfg.Leven = r }
}

// WithKind sets the reaction to differing record kinds.
func WithKind(r Reaction) Option {
	return func(cfg *Config) { cfg.Kind = r }
}

// WithNewHeader selects the result header parent: false for the first
// operand in each fold chain, true for the last.
func WithNewHeader(newHeader bool) Option {
	return func(cfg *Config) { cfg.NewHeader = newHeader }
}

// WithDeltaTolerance sets the relative tolerance used when comparing sample
// intervals. Zero (the default) demands exact equality.
func WithDeltaTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol >= 0 {
			cfg.DeltaTol = tol
		}
	}
}

// WithWarningHandler streams warnings to fn as they are emitted.
func WithWarningHandler(fn func(Warning)) Option {
	return func(cfg *Config) { cfg.WarningHandler = fn }
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Validate checks that every configured reaction is recognized and valid
// for its attribute.
func (c Config) Validate() error {
	sizing := []struct {
		attr Attribute
		r    Reaction
	}{
		{AttrNpts, c.Npts},
		{AttrNcmp, c.Ncmp},
	}
	for _, p := range sizing {
		if p.r < ReactError || p.r > ReactPad {
			return fmt.Errorf("%w: %s for %s", ErrUnsupportedPolicy, p.r, p.attr)
		}
	}

	advisory := []struct {
		attr Attribute
		r    Reaction
	}{
		{AttrDelta, c.Delta},
		{AttrBegin, c.Begin},
		{AttrRef, c.Ref},
		{AttrLeven, c.Leven},
		{AttrKind, c.Kind},
	}
	for _, p := range advisory {
		if p.r != ReactError && p.r != ReactWarn && p.r != ReactIgnore {
			return fmt.Errorf("%w: %s for %s", ErrUnsupportedPolicy, p.r, p.attr)
		}
	}

	return nil
}
