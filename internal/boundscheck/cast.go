// Package boundscheck casts between integer widths, rejecting anything
// that would overflow the narrower type instead of silently truncating
// it. The codec uses it to narrow the message id passed to
// Message.SetMessageID into the header's uint16. Adapted from the
// teacher's pkg/math.
package boundscheck

import (
	"fmt"
	"reflect"
	"unsafe"

	"golang.org/x/exp/constraints"
)

func max[T constraints.Integer]() T {
	size := unsafe.Sizeof(T(0))
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return T(1<<(size*8-1) - 1)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return T(1<<(size*8) - 1)
	default:
		panic("unsupported type")
	}
}

func min[T constraints.Integer]() T {
	size := unsafe.Sizeof(T(0))
	switch reflect.TypeOf((*T)(nil)).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return T(int64(-1) << (size*8 - 1))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return T(0)
	default:
		panic("unsupported type")
	}
}

// SafeCastTo casts from into T, failing rather than truncating if from
// falls outside T's range.
func SafeCastTo[T, F constraints.Integer](from F) (T, error) {
	if from > 0 && uint64(max[T]()) < uint64(from) {
		return T(0), fmt.Errorf("value(%v) exceeds the maximum value for type(%v)", from, max[T]())
	}
	if from < 0 && int64(min[T]()) > int64(from) {
		return T(0), fmt.Errorf("value(%v) exceeds the minimum value for type(%v)", from, min[T]())
	}
	return T(from), nil
}
