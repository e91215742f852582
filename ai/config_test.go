package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, 0.3, cfg.Temperature)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.NotNil(t, cfg)
		// Should have default values
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
		assert.Equal(t, "gpt-4o-mini", cfg.Model)
	})

	t.Run("with custom host", func(t *testing.T) {
		cfg := NewConfig(WithHost("http://custom:8080/v1"))

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
	})

	t.Run("with custom model", func(t *testing.T) {
		cfg := NewConfig(WithModel("qwen2.5:3b"))

		assert.Equal(t, "qwen2.5:3b", cfg.Model)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://custom:8080/v1"),
			WithModel("custom-model"),
			WithTemperature(0.0),
		)

		assert.Equal(t, "http://custom:8080/v1", cfg.Host)
		assert.Equal(t, "custom-model", cfg.Model)
		assert.Equal(t, 0.0, cfg.Temperature)
	})
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "adds v1 suffix", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "strips trailing slash first", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "keeps existing v1", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
		{name: "empty host untouched", host: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := &Config{Model: "gpt-4o-mini", Temperature: 0.3}
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := &Config{Host: "http://localhost:11434/v1", Temperature: 0.3}
		assert.Error(t, cfg.Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := &Config{Host: "http://localhost:11434/v1", Model: "m", Temperature: 3.0}
		assert.Error(t, cfg.Validate())
	})

	t.Run("validate normalizes host", func(t *testing.T) {
		cfg := &Config{Host: "http://localhost:11434", Model: "m", Temperature: 0.3}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})
}
