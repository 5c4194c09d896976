package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "", c.APIBaseURL)
	assert.Equal(t, "http://localhost:8000", c.Origin)
	assert.Equal(t, 12*time.Second, c.RequestTimeout)
	assert.Equal(t, ".prizo", c.StateDirName)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:8000", cfg.Origin)
	assert.Equal(t, 12*time.Second, cfg.RequestTimeout)
}
