package pool

import (
	"io"

	"github.com/dsnet/golib/memfile"

	"github.com/coap-toolkit/coapmsg/message"
	"github.com/coap-toolkit/coapmsg/message/codes"
)

// Message is a pooled wrapper around message.Message. Its payload is
// backed by a memfile.File rather than a bare []byte, the same seekable
// in-memory file the teacher's net/blockwise package uses for request
// and response bodies, so callers can stream the payload out via
// io.ReadWriteSeeker instead of copying the whole buffer up front.
type Message struct {
	msg  message.Message
	body *memfile.File

	bufferMarshal   []byte
	bufferUnmarshal []byte
}

const defaultBufferSize = 256

// NewMessage returns a Message with its scratch buffers pre-sized.
func NewMessage() *Message {
	return &Message{
		bufferMarshal:   make([]byte, defaultBufferSize),
		bufferUnmarshal: make([]byte, defaultBufferSize),
	}
}

// Reset clears m back to a just-acquired state, releasing its body and
// shrinking any scratch buffer that grew unusually large while in use.
func (m *Message) Reset() {
	m.msg.Reset()
	m.body = nil
	if cap(m.bufferMarshal) > 4*defaultBufferSize {
		m.bufferMarshal = make([]byte, defaultBufferSize)
	}
	if cap(m.bufferUnmarshal) > 4*defaultBufferSize {
		m.bufferUnmarshal = make([]byte, defaultBufferSize)
	}
}

// Message returns the underlying message.Message, with its Payload
// filled in from Body if one was set via SetBody.
func (m *Message) Message() (message.Message, error) {
	if m.body == nil {
		return m.msg, nil
	}
	payload, err := m.ReadBody()
	if err != nil {
		return message.Message{}, err
	}
	out := m.msg
	out.Payload = payload
	return out, nil
}

// SetMessage replaces m's fields with msg's, backing the payload (if
// any) with a fresh memfile.File.
func (m *Message) SetMessage(msg message.Message) {
	m.msg = msg
	m.msg.Payload = nil
	m.body = nil
	if len(msg.Payload) > 0 {
		m.body = memfile.New(append([]byte(nil), msg.Payload...))
	}
}

// SetBody attaches a seekable body, overriding any payload already
// carried by the wrapped message.Message.
func (m *Message) SetBody(body *memfile.File) {
	m.body = body
}

// Body returns the seekable payload body, or nil if none was set.
func (m *Message) Body() *memfile.File {
	return m.body
}

// BodySize reports the length of the body without disturbing its
// current read position.
func (m *Message) BodySize() (int64, error) {
	if m.body == nil {
		return 0, nil
	}
	orig, err := m.body.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	size, err := m.body.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	_, err = m.body.Seek(orig, io.SeekStart)
	if err != nil {
		return 0, err
	}
	return size, nil
}

// ReadBody reads the whole body from the start, restoring nothing about
// its position afterward (callers that need the body again should Seek
// back to 0 themselves).
func (m *Message) ReadBody() ([]byte, error) {
	if m.body == nil {
		return nil, nil
	}
	size, err := m.BodySize()
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	if _, err := m.body.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(m.body, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Token returns the wrapped message's token.
func (m *Message) Token() []byte {
	return m.msg.Token
}

// SetToken sets the wrapped message's token.
func (m *Message) SetToken(token []byte) error {
	return m.msg.SetToken(token)
}

// Type returns the wrapped message's type.
func (m *Message) Type() message.Type {
	return m.msg.Type
}

// SetType sets the wrapped message's type.
func (m *Message) SetType(t message.Type) error {
	return m.msg.SetType(t)
}

// MessageID returns the wrapped message's id.
func (m *Message) MessageID() uint16 {
	return m.msg.MessageID
}

// SetMessageID sets the wrapped message's id.
func (m *Message) SetMessageID(id int) error {
	return m.msg.SetMessageID(id)
}

// AddOption appends an option to the wrapped message.
func (m *Message) AddOption(num uint32, value []byte) {
	m.msg.AddOption(num, value)
}

// SetCode sets the wrapped message's code.
func (m *Message) SetCode(class, detail uint8) error {
	return m.msg.SetCode(class, detail)
}

// Code returns the wrapped message's code.
func (m *Message) Code() codes.Code {
	return m.msg.Code
}

// Marshal encodes m into a right-sized internal buffer and returns it.
// The returned slice is only valid until the next call to Marshal on
// this Message.
func (m *Message) Marshal(opts ...message.Option2) ([]byte, error) {
	msg, err := m.Message()
	if err != nil {
		return nil, err
	}
	size, err := message.Size(msg)
	if err != nil {
		return nil, err
	}
	if len(m.bufferMarshal) < size {
		m.bufferMarshal = append(m.bufferMarshal, make([]byte, size-len(m.bufferMarshal))...)
	}
	n, err := message.Encode(msg, m.bufferMarshal, opts...)
	if err != nil {
		return nil, err
	}
	m.bufferMarshal = m.bufferMarshal[:n]
	return m.bufferMarshal, nil
}

// Unmarshal decodes data into m, copying it into an internal scratch
// buffer first so m does not retain the caller's slice.
func (m *Message) Unmarshal(data []byte, opts ...message.Option2) error {
	if len(m.bufferUnmarshal) < len(data) {
		m.bufferUnmarshal = append(m.bufferUnmarshal, make([]byte, len(data)-len(m.bufferUnmarshal))...)
	}
	n := copy(m.bufferUnmarshal, data)
	m.bufferUnmarshal = m.bufferUnmarshal[:n]

	decoded, err := message.Decode(m.bufferUnmarshal, opts...)
	if err != nil {
		return err
	}
	m.SetMessage(decoded)
	return nil
}

func (m *Message) String() string {
	return m.msg.String()
}
