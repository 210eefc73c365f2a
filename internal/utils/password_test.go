package utils

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("correct horse battery staple", 4)
    require.NoError(t, err)
    assert.NotEqual(t, "correct horse battery staple", hash)

    assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
    assert.False(t, VerifyPassword(hash, "wrong password"))
    assert.False(t, VerifyPassword("not a bcrypt hash", "anything"))
}

func TestHashPasswordSalted(t *testing.T) {
    h1, err := HashPassword("same input", 4)
    require.NoError(t, err)
    h2, err := HashPassword("same input", 4)
    require.NoError(t, err)
    assert.NotEqual(t, h1, h2)
}
