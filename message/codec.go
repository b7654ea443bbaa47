package message

import (
	"encoding/binary"
	"fmt"

	"github.com/coap-toolkit/coapmsg/message/codes"
)

/*
    0                   1                   2                   3
   0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
  +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |Ver| T |  TKL  |      Code     |          Message ID           |
  +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |   Token (if any, TKL bytes) ...
  +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |   Options (if any) ...
  +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
  |1 1 1 1 1 1 1 1|    Payload (if any) ...
  +-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+-+
*/

// Decode parses buf into a fresh Message, grounded directly on the
// original coap_msg_parse's sub-stage walk (header, token, options,
// payload) and on the teacher's udp/coder.Coder.Decode shape. opts are
// applied in order over the package defaults (see NewConfig); with no
// opts the defaults are used as they are.
func Decode(buf []byte, opts ...Option2) (Message, error) {
	cfg := NewConfig(opts...)
	m, err := decode(buf, cfg)
	if err != nil {
		cfg.reportError(err)
		return Message{}, err
	}
	return m, nil
}

func decode(buf []byte, cfg Config) (Message, error) {
	if len(buf) > cfg.maxMessageSize {
		return Message{}, fmt.Errorf("%w: message of %d bytes exceeds configured maximum %d", ErrBadMessage, len(buf), cfg.maxMessageSize)
	}
	if len(buf) < 4 {
		return Message{}, fmt.Errorf("%w: header requires 4 bytes, got %d", ErrBadMessage, len(buf))
	}

	if buf[0]>>6 != Version {
		return Message{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidArgument, buf[0]>>6)
	}
	typ := Type((buf[0] >> 4) & 0x3)
	tokenLen := int(buf[0] & 0x0f)
	if tokenLen > MaxTokenSize {
		return Message{}, fmt.Errorf("%w: token length %d exceeds %d", ErrBadMessage, tokenLen, MaxTokenSize)
	}

	code := codes.Code(buf[1])
	if !code.IsWireLegalClass() {
		return Message{}, fmt.Errorf("%w: disallowed code class %d", ErrBadMessage, code.Class())
	}

	msgID := binary.BigEndian.Uint16(buf[2:4])
	rest := buf[4:]

	if len(rest) < tokenLen {
		return Message{}, fmt.Errorf("%w: truncated token, need %d bytes, have %d", ErrBadMessage, tokenLen, len(rest))
	}
	var token []byte
	if tokenLen > 0 {
		token = append([]byte(nil), rest[:tokenLen]...)
	}
	rest = rest[tokenLen:]

	opts2, consumed, err := UnmarshalOptions(rest)
	if err != nil {
		return Message{}, err
	}
	rest = rest[consumed:]

	var payload []byte
	if len(rest) > 0 {
		if rest[0] != 0xff {
			return Message{}, fmt.Errorf("%w: expected payload marker, got %#x", ErrBadMessage, rest[0])
		}
		rest = rest[1:]
		if len(rest) == 0 {
			return Message{}, fmt.Errorf("%w: payload marker present with no payload bytes", ErrBadMessage)
		}
		payload = append([]byte(nil), rest...)
	}

	m := Message{
		Type:      typ,
		Code:      code,
		MessageID: msgID,
		Token:     token,
		Options:   opts2,
		Payload:   payload,
	}
	if err := Validate(&m); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Size reports the number of bytes Encode would write for m, without
// writing them — the teacher's udp/coder.Coder.Size idiom, used by
// callers that size a buffer before allocating it.
func Size(m Message) (int, error) {
	if len(m.Token) > MaxTokenSize {
		return -1, fmt.Errorf("%w: token length %d exceeds %d", ErrInvalidArgument, len(m.Token), MaxTokenSize)
	}
	optionsLen, err := m.Options.Marshal(nil)
	if err != nil && err != ErrNoSpace {
		return -1, err
	}
	size := 4 + len(m.Token) + optionsLen
	if len(m.Payload) > 0 {
		size += 1 + len(m.Payload)
	}
	return size, nil
}

// Encode formats m into buf, grounded on the original coap_msg_format's
// sub-stage walk and the teacher's udp/coder.Coder.Encode. It runs
// Validate before writing anything, so a rejected Message never
// partially populates buf.
func Encode(m Message, buf []byte, opts ...Option2) (int, error) {
	cfg := NewConfig(opts...)
	n, err := encode(m, buf, cfg)
	if err != nil {
		cfg.reportError(err)
	}
	return n, err
}

func encode(m Message, buf []byte, cfg Config) (int, error) {
	if err := Validate(&m); err != nil {
		return 0, err
	}
	if len(m.Token) > MaxTokenSize {
		return 0, fmt.Errorf("%w: token length %d exceeds %d", ErrInvalidArgument, len(m.Token), MaxTokenSize)
	}
	if !ValidType(m.Type) {
		return 0, fmt.Errorf("%w: invalid message type %v", ErrInvalidArgument, m.Type)
	}

	size, err := Size(m)
	if err != nil {
		return 0, err
	}
	if size > cfg.maxMessageSize {
		return 0, fmt.Errorf("%w: encoded message of %d bytes exceeds configured maximum %d", ErrNoSpace, size, cfg.maxMessageSize)
	}
	if len(buf) < 4 {
		return 0, ErrNoSpace
	}

	buf[0] = (Version << 6) | (byte(m.Type)&0x3)<<4 | byte(len(m.Token)&0x0f)
	buf[1] = byte(m.Code)
	binary.BigEndian.PutUint16(buf[2:4], m.MessageID)
	pos := 4

	if len(buf)-pos < len(m.Token) {
		return 0, ErrNoSpace
	}
	pos += copy(buf[pos:], m.Token)

	n, err := m.Options.Marshal(buf[pos:])
	if err != nil {
		return 0, err
	}
	pos += n

	if len(m.Payload) > 0 {
		if len(buf)-pos < 1+len(m.Payload) {
			return 0, ErrNoSpace
		}
		buf[pos] = 0xff
		pos++
		pos += copy(buf[pos:], m.Payload)
	}
	return pos, nil
}

// DecodeTypeAndMessageID extracts only the Type and MessageID header
// fields without parsing tokens, options, or payload — the Go name for
// the original coap_msg_parse_type_msg_id, used by transports that must
// dispatch (e.g. match an ACK to an outstanding CON) before paying for a
// full Decode.
func DecodeTypeAndMessageID(buf []byte) (Type, uint16, error) {
	if len(buf) < 4 {
		return 0, 0, fmt.Errorf("%w: header requires 4 bytes, got %d", ErrBadMessage, len(buf))
	}
	typ := Type((buf[0] >> 4) & 0x3)
	msgID := binary.BigEndian.Uint16(buf[2:4])
	return typ, msgID, nil
}
