package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, Verify("s3cret", hash))
	assert.False(t, Verify("wrong!", hash))
	assert.False(t, Verify("s3cret", ""))
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate("12345"), ErrTooShort)
	assert.NoError(t, Validate("123456"))
	assert.NoError(t, Validate("密码密码密码"))
	assert.ErrorIs(t, Validate(strings.Repeat("a", MaxBytes+1)), ErrTooLong)

	_, err := Hash(strings.Repeat("a", MaxBytes+1))
	assert.ErrorIs(t, err, ErrTooLong)
}
