package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordSetAndCompare(t *testing.T) {
	var p Password

	err := p.set("somePass")
	assert.NoError(t, err)
	assert.NotEmpty(t, p.hash)
	assert.NotEqual(t, []byte("somePass"), p.hash)
	assert.Equal(t, Password{hash: p.hash}, p)

	ok, err := p.compare("somePass")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.compare("wrongPass")
	assert.NoError(t, err)
	assert.False(t, ok)
}
