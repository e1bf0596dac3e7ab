package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		// Given: a config file overriding some values
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte(`
log-level: debug
socket-port: "8100"
redis:
  host: redis
lobby:
  join-key-ttl: 5m
socket:
  max-message-size: 1024
`), 0o600))

		// When: it is loaded
		conf, err := Load(path)

		// Then: file values win and the rest keep their defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8100", conf.SocketPort)
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 5*time.Minute, conf.Lobby.JoinKeyTTL)
		assert.Equal(t, 3, conf.Lobby.JoinKeyBytes)
		assert.Equal(t, 10*time.Second, conf.Socket.WriteWait)
		assert.Equal(t, int64(1024), conf.Socket.MaxMessageSize)
	})

	t.Run("missing file falls back to environment", func(t *testing.T) {
		// Given: no file and a few variables set
		t.Setenv("SOCKET_PORT", "9001")
		t.Setenv("JOIN_KEY_BYTES", "6")

		// When: the config is loaded
		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		// Then: environment and defaults are used
		require.NoError(t, err)
		assert.Equal(t, "9001", conf.SocketPort)
		assert.Equal(t, 6, conf.Lobby.JoinKeyBytes)
		assert.Equal(t, 30*time.Minute, conf.Lobby.JoinKeyTTL)
		assert.Equal(t, 60*time.Second, conf.Socket.PongWait)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("lobby: [not, a, map"), 0o600))

		_, err := Load(path)

		assert.Error(t, err)
	})
}
