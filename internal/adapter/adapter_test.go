package adapter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/niksmo/catalog/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeTLSConfig(t *testing.T) {
	t.Run("MissingCA", func(t *testing.T) {
		_, err := adapter.MakeTLSConfig(
			filepath.Join(t.TempDir(), "ca.pem"), "cert.pem", "key.pem",
		)
		assert.Error(t, err)
	})

	t.Run("MalformedCA", func(t *testing.T) {
		ca := filepath.Join(t.TempDir(), "ca.pem")
		require.NoError(t, os.WriteFile(ca, []byte("not a certificate"), 0o600))

		_, err := adapter.MakeTLSConfig(ca, "cert.pem", "key.pem")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse CA certificate")
	})
}
