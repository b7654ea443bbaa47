package message

import (
	"sync"
	"time"

	"github.com/coap-toolkit/coapmsg/message/internal/xrand"
)

// TokenSource generates opaque token bytes. The package default is a
// lazily-seeded, non-cryptographic PRNG (spec.md §4.5); callers that need
// cryptographic tokens, or that want to dodge the shared first-use seeding
// entirely, can supply their own via WithTokenSource.
type TokenSource interface {
	GenerateRandomBytes(buf []byte)
}

// lazyRand mirrors the original coap_msg_gen_rand_str: one process-wide
// generator, seeded from the wall clock on first use. Unlike the original,
// the first use is guarded by sync.Once rather than a bare flag, closing
// the first-use race spec.md §9 Design Notes flags as a defect.
type lazyRand struct {
	once sync.Once
	r    *xrand.Rand
}

func (l *lazyRand) GenerateRandomBytes(buf []byte) {
	l.once.Do(func() {
		l.r = xrand.New(time.Now().UnixNano())
	})
	l.r.Read(buf)
}

var defaultTokenSource TokenSource = &lazyRand{}

// GenerateRandomBytes fills buf with len(buf) pseudo-random bytes from the
// package-default token source (coap_msg_gen_rand_str's Go name).
func GenerateRandomBytes(buf []byte) {
	defaultTokenSource.GenerateRandomBytes(buf)
}

// GenerateToken returns a freshly generated token of length n bytes using
// the package-default token source. n must not exceed MaxTokenSize.
func GenerateToken(n int) ([]byte, error) {
	if n < 0 || n > MaxTokenSize {
		return nil, ErrInvalidArgument
	}
	buf := make([]byte, n)
	GenerateRandomBytes(buf)
	return buf, nil
}
