package message

// Option is a single CoAP option: a number, and an owned copy of its value
// bytes. Its length is simply len(Value); there is no separate length
// field, unlike the original C coap_msg_op_t, because a Go slice already
// carries its own length.
type Option struct {
	Num   uint32
	Value []byte
}

// NewOption copies value into a freshly allocated slice so the returned
// Option owns bytes independent of the caller's buffer (spec.md §8
// property 5, Buffer purity).
func NewOption(num uint32, value []byte) Option {
	v := make([]byte, len(value))
	copy(v, value)
	return Option{Num: num, Value: v}
}

// Len returns the number of value bytes carried by the option.
func (o Option) Len() int {
	return len(o.Value)
}
