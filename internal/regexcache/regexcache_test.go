package regexcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	re, ok := Get("^a+$")
	require.True(t, ok)
	assert.True(t, re.MatchString("aaa"))

	// Second lookup hits the cache and returns the same instance.
	again, ok := Get("^a+$")
	require.True(t, ok)
	assert.Same(t, re, again)
}

func TestGet_BadPattern(t *testing.T) {
	_, ok := Get("[unclosed")
	assert.False(t, ok)

	// Failure is cached too.
	_, ok = Get("[unclosed")
	assert.False(t, ok)
}

func TestMatches(t *testing.T) {
	match, ok := Matches(`^\d+$`, "123")
	assert.True(t, ok)
	assert.True(t, match)

	match, ok = Matches(`^\d+$`, "12a")
	assert.True(t, ok)
	assert.False(t, match)

	_, ok = Matches("[bad", "anything")
	assert.False(t, ok)
}
