package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"bucket", "photos", "aws_secret_key", "abc", "DB_PASSWORD", "pw", "dangling"})
	assert.Equal(t, []interface{}{"bucket", "photos", "aws_secret_key", "[REDACTED]", "DB_PASSWORD", "[REDACTED]", "dangling"}, out)
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"prod", "test", "dev"} {
		l, err := New(mode)
		assert.NoError(t, err, mode)
		assert.NotNil(t, l.With("service", "x"))
	}
}
