package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{name: "milliseconds", input: "1000ms", expected: time.Second},
		{name: "seconds", input: "30s", expected: 30 * time.Second},
		{name: "complex duration", input: "1h30m45s", expected: time.Hour + 30*time.Minute + 45*time.Second},
		{name: "zero duration", input: "0s", expected: 0},
		{name: "no unit", input: "100", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
		{name: "non-numeric", input: "abcs", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration)
		})
	}
}

func TestDuration_ConfigFormats(t *testing.T) {
	type pollConfig struct {
		Interval Duration `json:"interval" yaml:"interval"`
	}

	t.Run("json", func(t *testing.T) {
		var cfg pollConfig
		require.NoError(t, json.Unmarshal([]byte(`{"interval":"1s"}`), &cfg))
		assert.Equal(t, time.Second, cfg.Interval.Duration)

		data, err := json.Marshal(cfg)
		require.NoError(t, err)
		assert.JSONEq(t, `{"interval":"1s"}`, string(data))
	})

	t.Run("yaml", func(t *testing.T) {
		var cfg pollConfig
		require.NoError(t, yaml.Unmarshal([]byte("interval: 250ms\n"), &cfg))
		assert.Equal(t, 250*time.Millisecond, cfg.Interval.Duration)

		data, err := yaml.Marshal(pollConfig{Interval: NewDuration(10 * time.Second)})
		require.NoError(t, err)

		var decoded pollConfig
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		assert.Equal(t, 10*time.Second, decoded.Interval.Duration)
	})

	t.Run("invalid json", func(t *testing.T) {
		var cfg pollConfig
		require.Error(t, json.Unmarshal([]byte(`{"interval":"soon"}`), &cfg))
	})
}

func TestDuration_JSONSchema(t *testing.T) {
	schema := Duration{}.JSONSchema()

	require.NotNil(t, schema)
	assert.Equal(t, "string", schema.Type)
	assert.Equal(t, "Duration", schema.Title)
	assert.Contains(t, schema.Examples, "1m")
}
