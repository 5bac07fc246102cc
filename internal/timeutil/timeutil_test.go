package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationOrDefault(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationOrDefault("", 5*time.Second))
	assert.Equal(t, 5*time.Second, ParseDurationOrDefault("nope", 5*time.Second))
	assert.Equal(t, 5*time.Second, ParseDurationOrDefault("-1s", 5*time.Second))
	assert.Equal(t, 250*time.Millisecond, ParseDurationOrDefault(" 250ms ", time.Second))
}

func TestValidDuration(t *testing.T) {
	assert.True(t, ValidDuration(""))
	assert.True(t, ValidDuration("1m"))
	assert.False(t, ValidDuration("1 minute"))
	assert.False(t, ValidDuration("-2s"))
}
