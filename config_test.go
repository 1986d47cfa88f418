package entitystore

import (
	"testing"

	"pkg.world.dev/entitystore/assert"
)

func TestConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	assert.NilError(t, err)
	assert.Equal(t, defaultConfig, *cfg)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	wantCfg := Config{
		LogLevel:      "debug",
		StrictFreeze:  true,
		StatsdAddress: "localhost:8125",
		Namespace:     "arena",
	}
	t.Setenv("ENTITYSTORE_LOG_LEVEL", wantCfg.LogLevel)
	t.Setenv("ENTITYSTORE_STRICT_FREEZE", "true")
	t.Setenv("ENTITYSTORE_STATSD_ADDRESS", wantCfg.StatsdAddress)
	t.Setenv("ENTITYSTORE_NAMESPACE", wantCfg.Namespace)

	gotCfg, err := LoadConfig()
	assert.NilError(t, err)
	assert.Equal(t, wantCfg, *gotCfg)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "default config is valid",
			cfg:     defaultConfig,
			wantErr: false,
		},
		{
			name:    "unknown log level",
			cfg:     Config{LogLevel: "loud", Namespace: "foo"},
			wantErr: true,
		},
		{
			name:    "empty namespace",
			cfg:     Config{LogLevel: "warn"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.IsError(t, err)
			} else {
				assert.NilError(t, err)
			}
		})
	}
}

func TestNewManagerFromEnv_StrictFreeze(t *testing.T) {
	t.Setenv("ENTITYSTORE_STRICT_FREEZE", "true")
	t.Setenv("ENTITYSTORE_LOG_LEVEL", "disabled")

	m, err := NewManagerFromEnv()
	assert.NilError(t, err)
	assert.True(t, m.strictFreeze)

	m.Freeze()
	_, err = m.CreateEntity()
	assert.ErrorIs(t, err, ErrFrozen)
}

func TestNewManagerFromEnv_InvalidConfig(t *testing.T) {
	t.Setenv("ENTITYSTORE_LOG_LEVEL", "loud")

	_, err := NewManagerFromEnv()
	assert.ErrorContains(t, err, "invalid log level")
}
