package main

import (
	"bytes"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type sample struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Items []string `json:"items" yaml:"items" toml:"items"`
}

func TestEncode(t *testing.T) {
	in := sample{Name: "nav", Items: []string{"a", "b"}}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, encode(&buf, "", in))
		assert.Contains(t, buf.String(), "\n  \"name\": \"nav\"")

		var out sample
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, in, out)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, encode(&buf, "YAML", in))

		var out sample
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, in, out)
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, encode(&buf, formatTOML, in))

		var out sample
		require.NoError(t, toml.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, in, out)
	})

	t.Run("unknown", func(t *testing.T) {
		err := encode(&bytes.Buffer{}, "csv", in)
		assert.ErrorContains(t, err, `unsupported format "csv"`)
	})
}
