package postgres

import (
	"testing"
	"time"

	"vending-machine/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "vend",
		Password:        "secret",
		DBName:          "vending_machine",
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

func TestNewPoolConfig(t *testing.T) {
	poolCfg, err := newPoolConfig(testDBConfig())
	require.NoError(t, err)

	assert.Equal(t, int32(4), poolCfg.MaxConns)
	assert.Equal(t, int32(1), poolCfg.MinConns)
	assert.Equal(t, 30*time.Minute, poolCfg.MaxConnLifetime)
	assert.Equal(t, "localhost", poolCfg.ConnConfig.Host)
	assert.Equal(t, uint16(5432), poolCfg.ConnConfig.Port)
	assert.Equal(t, "vend", poolCfg.ConnConfig.User)
	assert.Equal(t, "vending_machine", poolCfg.ConnConfig.Database)
}

func TestNewPoolConfig_ZeroLimitsKeepPgxDefaults(t *testing.T) {
	cfg := testDBConfig()
	cfg.MaxConns = 0
	cfg.MinConns = 0
	cfg.ConnMaxLifetime = 0

	poolCfg, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Greater(t, poolCfg.MaxConns, int32(0))
	assert.Greater(t, poolCfg.MaxConnLifetime, time.Duration(0))
}

func TestNewPoolConfig_BadDSN(t *testing.T) {
	cfg := testDBConfig()
	cfg.Port = -1

	_, err := newPoolConfig(cfg)
	assert.Error(t, err)
}

// NOTE: NewPool needs a running PostgreSQL and is covered by integration runs only.
