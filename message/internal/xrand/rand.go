// Package xrand is a mutex-guarded math/rand source, adapted from the
// teacher's pkg/rand.Rand.
package xrand

import (
	"math/rand"
	"sync"
)

// Rand is a concurrency-safe, non-cryptographic byte source.
type Rand struct {
	src  *rand.Rand
	lock sync.Mutex
}

// New returns a Rand seeded with seed.
func New(seed int64) *Rand {
	return &Rand{
		src: rand.New(rand.NewSource(seed)),
	}
}

// Uint32 returns the next pseudo-random uint32.
func (r *Rand) Uint32() uint32 {
	r.lock.Lock()
	v := r.src.Uint32()
	r.lock.Unlock()
	return v
}

// Read fills buf with pseudo-random bytes, the Go equivalent of the
// original coap_msg_gen_rand_str's per-byte rand() & 0xff loop.
func (r *Rand) Read(buf []byte) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for i := range buf {
		buf[i] = byte(r.src.Intn(256))
	}
}
