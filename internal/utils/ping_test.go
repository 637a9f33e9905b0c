package utils

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingService(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	assert.NoError(t, PingService("http://"+listener.Addr().String(), time.Second))
	assert.Error(t, PingService("::not a url", time.Second))
	assert.Error(t, PingService("/relative/path", time.Second))
}

func TestPingAuth0(t *testing.T) {
	assert.Error(t, PingAuth0(""))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	assert.NoError(t, PingAuth0("http://"+listener.Addr().String()))
}
