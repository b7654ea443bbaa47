package codes_test

import (
	"testing"

	"github.com/coap-toolkit/coapmsg/message/codes"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c, err := codes.New(2, 5)
	require.NoError(t, err)
	require.Equal(t, uint8(2), c.Class())
	require.Equal(t, uint8(5), c.Detail())

	_, err = codes.New(8, 0)
	require.Error(t, err)

	_, err = codes.New(0, 32)
	require.Error(t, err)
}

func TestIsWireLegalClass(t *testing.T) {
	for _, class := range []uint8{0, 2, 4, 5} {
		c, err := codes.New(class, 0)
		require.NoError(t, err)
		require.True(t, c.IsWireLegalClass())
	}
	for _, class := range []uint8{1, 3, 6, 7} {
		c, err := codes.New(class, 0)
		require.NoError(t, err)
		require.False(t, c.IsWireLegalClass())
	}
}

func TestIsEmpty(t *testing.T) {
	c, err := codes.New(0, 0)
	require.NoError(t, err)
	require.True(t, c.IsEmpty())

	c, err = codes.New(0, 1)
	require.NoError(t, err)
	require.False(t, c.IsEmpty())
}

func TestString(t *testing.T) {
	c, err := codes.New(2, 5)
	require.NoError(t, err)
	require.Equal(t, "2.05", c.String())

	c, err = codes.New(0, 0)
	require.NoError(t, err)
	require.Equal(t, "Empty", c.String())
}
