package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "id", Join("", "id"))
	assert.Equal(t, "user.id", Join("user", "id"))
	assert.Equal(t, "user.address.city", Join(Join("user", "address"), "city"))
}

func TestIndex(t *testing.T) {
	assert.Equal(t, "[0]", Index("", 0))
	assert.Equal(t, "tags[2]", Index("tags", 2))
	assert.Equal(t, "user.tags[2]", Index(Join("user", "tags"), 2))
}

func TestChild(t *testing.T) {
	assert.Equal(t, ".age", Child("", "age"))
	assert.Equal(t, "user.age", Child("user", "age"))
}
