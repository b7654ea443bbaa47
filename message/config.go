package message

import "github.com/alecthomas/units"

// DefaultMaxMessageSize bounds the buffer Decode will attempt to consume
// unless overridden with WithMaxMessageSize. 64KiB comfortably covers any
// message a real transport (UDP datagram, or a single TCP frame) would
// hand the codec, while still catching a runaway length before the
// parser walks it.
var DefaultMaxMessageSize = int(64 * units.KiB)

// Config holds the policy knobs Decode and Encode accept, built with the
// With* functional options below — the same shape as the teacher's
// net/options.go and options/tcpOptions.go (a small apply-to-struct Opt
// type per knob, rather than a wide struct literal).
type Config struct {
	maxMessageSize int
	onError        func(error)
	tokenSource    TokenSource
}

// NewConfig builds a Config from the given options, seeded with the
// package defaults.
func NewConfig(opts ...Option2) Config {
	cfg := Config{
		maxMessageSize: DefaultMaxMessageSize,
		tokenSource:    defaultTokenSource,
	}
	for _, o := range opts {
		o.apply(&cfg)
	}
	return cfg
}

// Option2 is a Config option. It is named to avoid colliding with the
// unrelated Option (a CoAP option record) in this same package.
type Option2 interface {
	apply(*Config)
}

type maxMessageSizeOpt struct{ n int }

func (o maxMessageSizeOpt) apply(c *Config) { c.maxMessageSize = o.n }

// WithMaxMessageSize caps the buffer length Decode will attempt to
// consume. A buffer longer than n is rejected before any byte of it is
// inspected.
func WithMaxMessageSize(n int) Option2 {
	return maxMessageSizeOpt{n: n}
}

type errorsOpt struct{ fn func(error) }

func (o errorsOpt) apply(c *Config) { c.onError = o.fn }

// WithErrors registers a diagnostic callback invoked whenever Decode or
// Encode reject input, mirroring the teacher's net.WithErrors idiom. It is
// purely observational: the returned error from Decode/Encode is always
// the authoritative result, and the callback's return value (there isn't
// one) cannot change it.
func WithErrors(fn func(error)) Option2 {
	return errorsOpt{fn: fn}
}

type tokenSourceOpt struct{ src TokenSource }

func (o tokenSourceOpt) apply(c *Config) { c.tokenSource = o.src }

// WithTokenSource overrides the package-default lazily-seeded PRNG used
// for token generation, letting callers that need multi-threaded token
// generation without the shared first-use race (spec.md §9 Design Notes)
// supply their own source.
func WithTokenSource(src TokenSource) Option2 {
	return tokenSourceOpt{src: src}
}

func (c Config) reportError(err error) {
	if c.onError != nil && err != nil {
		c.onError(err)
	}
}

// GenerateToken returns a freshly generated token of length n bytes,
// using the Config's configured TokenSource rather than the package
// default.
func (c Config) GenerateToken(n int) ([]byte, error) {
	if n < 0 || n > MaxTokenSize {
		return nil, ErrInvalidArgument
	}
	buf := make([]byte, n)
	c.tokenSource.GenerateRandomBytes(buf)
	return buf, nil
}
