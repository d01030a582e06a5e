package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCORSOrigin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origin  string
		wantErr bool
	}{
		{"*", false},
		{"https://example.com", false},
		{"http://localhost:8080", false},
		{"http://127.0.0.1:3000", false},
		{"http://[::1]:3000", false},
		{"", true},
		{"https://example.com/", true},
		{"https://example.com/path", true},
		{"https://example.com?q=1", true},
		{"ftp://example.com", true},
		{"https://user:pw@example.com", true},
		{"https://example.com:70000", true},
		{"https://-bad-.com", true},
		{"https://example.123", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.origin, func(t *testing.T) {
			t.Parallel()

			err := ValidateCORSOrigin(tt.origin)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidatePort(1))
	assert.NoError(t, ValidatePort(65535))
	assert.Error(t, ValidatePort(0))
	assert.Error(t, ValidatePort(65536))
}

func TestValidateFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte("sku\n"), 0o600))

	assert.NoError(t, ValidateFile(path))
	assert.Error(t, ValidateFile(""))
	assert.Error(t, ValidateFile(dir))
	assert.Error(t, ValidateFile(filepath.Join(dir, "missing.csv")))
}
