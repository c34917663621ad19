package mcpserver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2, 3, 4, 5}, paginate(items, 0, 0))
	assert.Equal(t, []int{1, 2}, paginate(items, 0, 2))
	assert.Equal(t, []int{3, 4}, paginate(items, 2, 2))
	assert.Equal(t, []int{5}, paginate(items, 4, 10))
	assert.Nil(t, paginate(items, 9, 2))
	assert.Equal(t, []int{1, 2}, paginate(items, -1, 2))
}

func TestSanitizeError(t *testing.T) {
	assert.Equal(t, "", sanitizeError(nil))
	assert.Equal(t, "read document: open <path>: no such file or directory",
		sanitizeError(errors.New("read document: open /home/user/secret.json: no such file or directory")))
	assert.Equal(t, "plain message", sanitizeError(errors.New("plain message")))
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[int](0))
	s := makeSlice[int](3)
	assert.NotNil(t, s)
	assert.Equal(t, 0, len(s))
	assert.Equal(t, 3, cap(s))
}
