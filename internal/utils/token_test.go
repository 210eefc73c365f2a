package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessToken(t *testing.T) {
    at, err := NewAccessToken("test-secret", 42, "CUSTOMER", 15)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

    tok, err := jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("test-secret"), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)

    claims, ok := tok.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.Equal(t, float64(42), claims["sub"])
    assert.Equal(t, "CUSTOMER", claims["role"])
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
    at, err := NewAccessToken("test-secret", 42, "OWNER", 15)
    require.NoError(t, err)
    _, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
        return []byte("other-secret"), nil
    })
    assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
    r1, err := NewRefreshToken(30)
    require.NoError(t, err)
    r2, err := NewRefreshToken(30)
    require.NoError(t, err)

    assert.Len(t, r1.Raw, 96) // 48 random bytes hex-encoded
    assert.NotEqual(t, r1.Raw, r2.Raw)
    assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), r1.Exp, 5*time.Second)
}

func TestHashRefreshRawDeterministic(t *testing.T) {
    h1 := HashRefreshRaw("some raw token")
    h2 := HashRefreshRaw("some raw token")
    assert.Equal(t, h1, h2)
    assert.Len(t, h1, 64) // sha256 hex
    assert.NotEqual(t, h1, HashRefreshRaw("other token"))
}
