package message_test

import (
	"testing"

	"github.com/coap-toolkit/coapmsg/message"
	"github.com/stretchr/testify/require"
)

func TestValidateEmptyMessageOK(t *testing.T) {
	var m message.Message
	require.NoError(t, message.Validate(&m))
}

func TestValidateEmptyMessageRejectsNON(t *testing.T) {
	var m message.Message
	require.NoError(t, m.SetType(message.NonConfirmable))
	require.ErrorIs(t, message.Validate(&m), message.ErrBadMessage)
}

func TestValidateEmptyMessageRejectsToken(t *testing.T) {
	var m message.Message
	require.NoError(t, m.SetToken([]byte{1}))
	require.ErrorIs(t, message.Validate(&m), message.ErrBadMessage)
}

func TestValidateEmptyMessageRejectsOptions(t *testing.T) {
	var m message.Message
	m.AddOption(1, []byte("a"))
	require.ErrorIs(t, message.Validate(&m), message.ErrBadMessage)
}

func TestValidateEmptyMessageRejectsPayload(t *testing.T) {
	var m message.Message
	m.Payload = []byte("x")
	require.ErrorIs(t, message.Validate(&m), message.ErrBadMessage)
}

func TestValidateResetMustBeEmpty(t *testing.T) {
	var m message.Message
	require.NoError(t, m.SetType(message.Reset))
	require.NoError(t, m.SetCode(0, 1))
	require.ErrorIs(t, message.Validate(&m), message.ErrBadMessage)
}

func TestValidateIsIdempotent(t *testing.T) {
	var m message.Message
	require.NoError(t, m.SetCode(2, 5))
	err1 := message.Validate(&m)
	err2 := message.Validate(&m)
	require.Equal(t, err1, err2)
}
