package message

import (
	"encoding/binary"
	"fmt"
)

// Options is an ordered sequence of Option records. The wire format's
// delta-encoding requires the sequence to be in non-decreasing Num order
// along any path that reaches Marshal. The parser satisfies that by
// construction; AppendLast appends unconditionally, and InsertOrdered
// follows the (quirky, but faithfully reproduced) ordering rule described
// in spec.md §4.1, so neither of them guarantees it.
//
// This is a slice, not a linked list: the teacher's own message.Options
// is a slice too, and Go's append/copy make the insert/iterate primitives
// the original's first/last/next pointers modelled cheap enough that a
// linked list buys nothing here.
type Options []Option

const (
	extendByteForm = 13
	extendWordForm = 14
	extendReserved = 15

	extendByteBase = 13
	extendWordBase = 269

	maxExtendedValue = extendWordBase + 0xffff
)

// AppendLast appends rec at the tail unconditionally. The parser uses this:
// options arrive already in non-decreasing Num order on the wire.
func (o Options) AppendLast(num uint32, value []byte) Options {
	return append(o, NewOption(num, value))
}

// InsertOrdered is used by the public AddOption API. It inserts the new
// record immediately after the first existing record whose Num is
// strictly less than num — reproducing the original coap_msg_op_list_add
// walk exactly, including its surprising choice of the *first* such record
// rather than the last. The one behaviour that open question 1 (spec.md
// §9) calls a bug and asks to be fixed is the case where no such record
// exists: rather than appending at the tail (which would place the new,
// smallest-numbered record after larger ones), it is inserted at the head.
func (o Options) InsertOrdered(num uint32, value []byte) Options {
	rec := NewOption(num, value)
	for i := range o {
		if o[i].Num < num {
			return insertAt(o, i+1, rec)
		}
	}
	return insertAt(o, 0, rec)
}

func insertAt(o Options, idx int, rec Option) Options {
	o = append(o, Option{})
	copy(o[idx+1:], o[idx:len(o)-1])
	o[idx] = rec
	return o
}

// First returns the first option in the sequence, or nil if it is empty.
func (o Options) First() *Option {
	if len(o) == 0 {
		return nil
	}
	return &o[0]
}

// Last returns the last option in the sequence, or nil if it is empty.
func (o Options) Last() *Option {
	if len(o) == 0 {
		return nil
	}
	return &o[len(o)-1]
}

// OptionIterator is a forward cursor over an Options sequence, modelling
// the spec's first_op/op.next borrowed-reference traversal idiomatically.
type OptionIterator struct {
	opts Options
	idx  int
}

// Iterator returns a cursor positioned before the first option.
func (o Options) Iterator() *OptionIterator {
	return &OptionIterator{opts: o, idx: -1}
}

// Next advances the cursor and reports whether an option is available.
func (it *OptionIterator) Next() bool {
	it.idx++
	return it.idx < len(it.opts)
}

// Option returns the option at the cursor's current position. Next must
// have returned true before calling Option.
func (it *OptionIterator) Option() Option {
	return it.opts[it.idx]
}

func extendForm(v uint32) (nibble byte, ext []byte) {
	switch {
	case v < extendByteBase:
		return byte(v), nil
	case v < extendWordBase:
		return extendByteForm, []byte{byte(v - extendByteBase)}
	default:
		buf := make([]byte, 2)
		binary.BigEndian.PutUint16(buf, uint16(v-extendWordBase))
		return extendWordForm, buf
	}
}

// decodeExtendForm decodes one delta/length nibble, consuming its
// extension bytes (if any) from the front of buf. It checks len(buf)
// before touching buf[0] in every branch, closing the out-of-bounds read
// flagged by spec.md §9 Design Notes (open question 3).
func decodeExtendForm(nibble byte, buf []byte) (value uint32, consumed int, err error) {
	switch nibble {
	case extendByteForm:
		if len(buf) < 1 {
			return 0, 0, fmt.Errorf("%w: truncated option extension", ErrBadMessage)
		}
		return extendByteBase + uint32(buf[0]), 1, nil
	case extendWordForm:
		if len(buf) < 2 {
			return 0, 0, fmt.Errorf("%w: truncated option extension", ErrBadMessage)
		}
		return extendWordBase + uint32(binary.BigEndian.Uint16(buf[:2])), 2, nil
	default:
		return uint32(nibble), 0, nil
	}
}

// Marshal delta-encodes the sequence into buf, in order, and returns the
// number of bytes required. The sequence must already be in
// non-decreasing Num order; a descending step is rejected with
// ErrBadMessage. Sequences built with AppendLast or InsertOrdered can
// contain one (InsertOrdered of 5, 10, 20 yields 5, 20, 10), so callers
// building a Message are responsible for the order. Once buf is too
// small to hold the next option, Marshal
// stops writing but keeps computing the required length — mirroring the
// teacher's Options.Marshal — so callers (Size) can probe with a nil
// buf and get back the exact byte count alongside ErrNoSpace.
func (o Options) Marshal(buf []byte) (int, error) {
	var prev uint32
	pos := 0
	short := buf == nil && len(o) > 0
	for _, opt := range o {
		if opt.Num < prev {
			return 0, fmt.Errorf("%w: options not in ascending order", ErrBadMessage)
		}
		delta := opt.Num - prev
		if delta > maxExtendedValue {
			return 0, fmt.Errorf("%w: option delta too large to encode", ErrBadMessage)
		}
		length := uint32(len(opt.Value))
		deltaNibble, deltaExt := extendForm(delta)
		lengthNibble, lengthExt := extendForm(length)
		need := 1 + len(deltaExt) + len(lengthExt) + len(opt.Value)
		if short || pos+need > len(buf) {
			short = true
		} else {
			buf[pos] = deltaNibble<<4 | lengthNibble
			copy(buf[pos+1:], deltaExt)
			copy(buf[pos+1+len(deltaExt):], lengthExt)
			copy(buf[pos+1+len(deltaExt)+len(lengthExt):], opt.Value)
		}
		pos += need
		prev = opt.Num
	}
	if short {
		return pos, ErrNoSpace
	}
	return pos, nil
}

// UnmarshalOptions parses a run of delta-encoded options from the front of
// buf, stopping at the payload marker (0xff) or the end of buf, whichever
// comes first. It returns the parsed sequence and the number of bytes
// consumed, not including a trailing marker byte (the caller — Decode —
// is the one that knows whether a marker is mandatory at that point).
func UnmarshalOptions(buf []byte) (Options, int, error) {
	var opts Options
	var prev uint32
	pos := 0
	for pos < len(buf) {
		if buf[pos] == 0xff {
			break
		}
		deltaNibble := buf[pos] >> 4
		lengthNibble := buf[pos] & 0x0f
		if deltaNibble == extendReserved || lengthNibble == extendReserved {
			return nil, 0, fmt.Errorf("%w: reserved option nibble", ErrBadMessage)
		}
		pos++
		delta, n, err := decodeExtendForm(deltaNibble, buf[pos:])
		if err != nil {
			return nil, 0, err
		}
		pos += n
		length, n, err := decodeExtendForm(lengthNibble, buf[pos:])
		if err != nil {
			return nil, 0, err
		}
		pos += n
		if uint32(len(buf)-pos) < length {
			return nil, 0, fmt.Errorf("%w: option value truncated", ErrBadMessage)
		}
		num := prev + delta
		opts = opts.AppendLast(num, buf[pos:pos+int(length)])
		pos += int(length)
		prev = num
	}
	return opts, pos, nil
}
