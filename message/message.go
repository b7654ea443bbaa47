package message

import (
	"fmt"

	"github.com/coap-toolkit/coapmsg/internal/boundscheck"
	"github.com/coap-toolkit/coapmsg/message/codes"
)

// MaxTokenSize is the largest token a CoAP message may carry (RFC 7252 §3).
const MaxTokenSize = 8

// Version is the only protocol version this codec understands. Message
// never stores it: there is no setter for it anywhere in the public API
// (spec.md §4.4 names none), so keeping it as a mutable field would only
// create an invariant a bare struct literal could violate for no benefit.
const Version = 1

// Message is the aggregate CoAP message value: header scalars, an ordered
// option sequence, and a payload. A zero-value Message is exactly the
// "just created" state spec.md §3 Lifecycle describes: Type is
// Confirmable (0), Code is the empty code (0.00), Token/Options/Payload
// are all empty.
type Message struct {
	Type      Type
	Code      codes.Code
	MessageID uint16
	Token     []byte
	Options   Options
	Payload   []byte
}

// Version always returns the fixed protocol version this codec emits and
// accepts (spec.md §3: ver = 1).
func (m *Message) Version() int {
	return Version
}

// Reset clears m back to its just-created state, releasing its option
// records and payload buffer (spec.md §3 Lifecycle: destroy ∘ create).
func (m *Message) Reset() {
	m.Type = Confirmable
	m.Code = 0
	m.MessageID = 0
	m.Token = nil
	m.Options = nil
	m.Payload = nil
}

// SetType sets the message type, rejecting anything outside the four
// defined values.
func (m *Message) SetType(t Type) error {
	if !ValidType(t) {
		return fmt.Errorf("%w: invalid message type %v", ErrInvalidArgument, t)
	}
	m.Type = t
	return nil
}

// SetCode sets the message code from a class and a detail. class must fit
// in 3 bits and detail in 5 (spec.md §4.4); the stricter
// class-must-be-in-{0,2,4,5} rule is enforced only on the parse path, by
// Decode's header check, not here.
func (m *Message) SetCode(class, detail uint8) error {
	c, err := codes.New(class, detail)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	m.Code = c
	return nil
}

// SetMessageID sets the 16-bit message id. The parameter is an int so
// callers porting 32-bit C code can pass values before range-checking
// them; anything outside 0..65535 is rejected.
func (m *Message) SetMessageID(id int) error {
	v, err := boundscheck.SafeCastTo[uint16](id)
	if err != nil {
		return fmt.Errorf("%w: message id %d out of range: %v", ErrInvalidArgument, id, err)
	}
	m.MessageID = v
	return nil
}

// SetToken copies token into the message, rejecting anything longer than
// MaxTokenSize.
func (m *Message) SetToken(token []byte) error {
	if len(token) > MaxTokenSize {
		return fmt.Errorf("%w: token length %d exceeds %d", ErrInvalidArgument, len(token), MaxTokenSize)
	}
	m.Token = append([]byte(nil), token...)
	return nil
}

// AddOption adds an option to the sequence using the public insertion
// rule (spec.md §4.1 InsertOrdered). That rule does not keep the sequence
// sorted in every case; see InsertOrdered.
func (m *Message) AddOption(num uint32, value []byte) {
	m.Options = m.Options.InsertOrdered(num, value)
}

// SetPayload copies buf into the message's payload. Passing an empty or
// nil buf frees any existing payload.
func (m *Message) SetPayload(buf []byte) {
	if len(buf) == 0 {
		m.Payload = nil
		return
	}
	m.Payload = append([]byte(nil), buf...)
}

// Clone returns a deep copy of m: an independently owned token, option
// sequence, and payload (spec.md §4.4 copy, grounded on coap_msg_copy).
func (m *Message) Clone() *Message {
	dst := &Message{
		Type:      m.Type,
		Code:      m.Code,
		MessageID: m.MessageID,
	}
	if m.Token != nil {
		dst.Token = append([]byte(nil), m.Token...)
	}
	for _, opt := range m.Options {
		dst.Options = dst.Options.AppendLast(opt.Num, opt.Value)
	}
	if m.Payload != nil {
		dst.Payload = append([]byte(nil), m.Payload...)
	}
	return dst
}

func (m *Message) String() string {
	return fmt.Sprintf("Type: %v, Code: %v, MessageID: %v, Token: %x, Options: %d, PayloadLen: %d",
		m.Type, m.Code, m.MessageID, m.Token, len(m.Options), len(m.Payload))
}
