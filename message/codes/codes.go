// Package codes holds the CoAP code space (RFC 7252 §12.1): a one-byte
// field split into a 3-bit class and a 5-bit detail.
package codes

import "fmt"

// Code is a CoAP request/response code: the top 3 bits are the class, the
// bottom 5 bits are the detail.
type Code uint8

// Class values a Message's Code is permitted to carry on the wire
// (RFC 7252 §3, original coap_msg_t.code_class legal values).
const (
	Request     = 0 // 0.xx: the empty message (0.00) and request methods
	Success     = 2 // 2.xx
	ClientError = 4 // 4.xx
	ServerError = 5 // 5.xx
)

// MaxClass and MaxDetail are the widest values the Code fields can hold,
// independent of which classes are semantically legal on the wire; setters
// accept up to these bounds and leave wire legality to Decode's header check.
const (
	MaxClass  = 7
	MaxDetail = 31
)

// ErrInvalidArgument is returned by New when class or detail is out of
// range for the 3-bit/5-bit fields that carry them.
var ErrInvalidArgument = fmt.Errorf("code class/detail out of range")

// New builds a Code from a class and a detail, rejecting values that do
// not fit in their respective bit fields. It does not check that class is
// one of the wire-legal classes; that is the Validator's job on the parse
// path (spec-mandated asymmetry between setter and parse strictness).
func New(class, detail uint8) (Code, error) {
	if class > MaxClass || detail > MaxDetail {
		return 0, ErrInvalidArgument
	}
	return Code(class<<5 | detail), nil
}

// Class returns the 3-bit class of the code.
func (c Code) Class() uint8 {
	return uint8(c) >> 5
}

// Detail returns the 5-bit detail of the code.
func (c Code) Detail() uint8 {
	return uint8(c) & 0x1f
}

// IsWireLegalClass reports whether c's class is one of the classes the
// base CoAP message format allows on the wire (0, 2, 4, 5).
func (c Code) IsWireLegalClass() bool {
	switch c.Class() {
	case Request, Success, ClientError, ServerError:
		return true
	}
	return false
}

// IsEmpty reports whether c is the 0.00 empty-message code.
func (c Code) IsEmpty() bool {
	return c == 0
}

func (c Code) String() string {
	if c.IsEmpty() {
		return "Empty"
	}
	var class string
	switch c.Class() {
	case Request:
		class = "0"
	case Success:
		class = "2"
	case ClientError:
		class = "4"
	case ServerError:
		class = "5"
	default:
		class = fmt.Sprintf("%d", c.Class())
	}
	return fmt.Sprintf("%s.%02d", class, c.Detail())
}
