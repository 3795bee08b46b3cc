package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duckmail/internal/client/authflow"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://quack.duckduckgo.com/api", c.ServerEndpointAddr)
	assert.Equal(t, "duck.com", c.AddressDomain)
	assert.Equal(t, authflow.DefaultIdentifierPattern, c.IdentifierPattern)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "duckmail.db", c.DatabasePath)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://quack.duckduckgo.com/api", cfg.ServerEndpointAddr)
	assert.Equal(t, "duck.com", cfg.AddressDomain)
}
