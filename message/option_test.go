package message_test

import (
	"testing"

	"github.com/coap-toolkit/coapmsg/message"
	"github.com/stretchr/testify/require"
)

func TestNewOptionCopiesValue(t *testing.T) {
	v := []byte{1, 2, 3}
	opt := message.NewOption(11, v)
	v[0] = 0xff
	require.EqualValues(t, 1, opt.Value[0])
	require.Equal(t, 3, opt.Len())
}

func TestNewOptionEmptyValue(t *testing.T) {
	opt := message.NewOption(1, nil)
	require.Equal(t, 0, opt.Len())
}
