package pool_test

import (
	"testing"

	"github.com/dsnet/golib/memfile"

	"github.com/coap-toolkit/coapmsg/message"
	"github.com/coap-toolkit/coapmsg/message/pool"
	"github.com/stretchr/testify/require"
)

func TestAcquireReleaseRecycles(t *testing.T) {
	p := pool.New(4)
	m1 := p.AcquireMessage()
	require.NoError(t, m1.SetToken([]byte{1, 2}))
	p.ReleaseMessage(m1)

	m2 := p.AcquireMessage()
	require.Len(t, m2.Token(), 0, "released message must come back reset")
}

func TestReleaseRespectsMax(t *testing.T) {
	p := pool.New(1)
	m1 := p.AcquireMessage()
	m2 := p.AcquireMessage()
	p.ReleaseMessage(m1)
	p.ReleaseMessage(m2) // pool already at max, this one is just dropped
}

func TestSetBodyIsCarriedThroughMarshal(t *testing.T) {
	p := pool.New(4)
	m := p.AcquireMessage()
	require.NoError(t, m.SetCode(2, 5))
	m.SetBody(memfile.New([]byte("hello")))

	buf, err := m.Marshal()
	require.NoError(t, err)

	out := p.AcquireMessage()
	require.NoError(t, out.Unmarshal(buf))
	body, err := out.ReadBody()
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), body)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	p := pool.New(4)
	m := p.AcquireMessage()
	require.NoError(t, m.SetType(message.Confirmable))
	require.NoError(t, m.SetMessageID(0x1234))
	m.AddOption(11, []byte("a"))
	require.NoError(t, m.SetCode(0, 1))

	buf, err := m.Marshal()
	require.NoError(t, err)

	out := p.AcquireMessage()
	require.NoError(t, out.Unmarshal(buf))
	require.Equal(t, message.Confirmable, out.Type())
	require.EqualValues(t, 0x1234, out.MessageID())
}
