// Package pool recycles Message values across the lifetime of a process
// that decodes and encodes many CoAP datagrams, the way the teacher's own
// message/pool package recycles its request/response wrapper. The codec
// in the parent message package is itself allocation-free where it can
// be; this package is the opt-in layer above it for callers on a hot
// path who want to avoid a fresh Message (and its token/options/payload
// slices) on every datagram.
package pool

import (
	"sync"

	"go.uber.org/atomic"
)

// Pool recycles *Message values, bounding how many it keeps alive so a
// burst of traffic followed by a quiet period doesn't pin an unbounded
// amount of memory in the sync.Pool's free list.
type Pool struct {
	// currentMessagesInPool must stay first for word alignment on 32-bit
	// platforms, mirroring the teacher's pool.Pool layout.
	currentMessagesInPool atomic.Int64
	messagePool           sync.Pool
	maxNumMessages        int64
}

// New returns a Pool that keeps at most maxNumMessages recycled Messages
// alive at once.
func New(maxNumMessages int64) *Pool {
	return &Pool{maxNumMessages: maxNumMessages}
}

// AcquireMessage returns a cleared Message, either recycled from the
// pool's free list or freshly allocated.
func (p *Pool) AcquireMessage() *Message {
	v := p.messagePool.Get()
	if v == nil {
		return NewMessage()
	}
	p.currentMessagesInPool.Dec()
	return v.(*Message)
}

// ReleaseMessage returns m to the pool's free list once it is reset. If
// the pool already holds maxNumMessages, m is dropped without being reset.
// Callers must not touch m after calling ReleaseMessage.
func (p *Pool) ReleaseMessage(m *Message) {
	for {
		v := p.currentMessagesInPool.Load()
		if v >= p.maxNumMessages {
			return
		}
		if p.currentMessagesInPool.CAS(v, v+1) {
			break
		}
	}
	m.Reset()
	p.messagePool.Put(m)
}
