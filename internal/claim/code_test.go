package claim

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewCodeShape(t *testing.T) {
    seen := map[string]bool{}
    for i := 0; i < 200; i++ {
        code, err := NewCode()
        require.NoError(t, err)
        assert.Len(t, code, CodeLength)
        for j := 0; j < len(code); j++ {
            c := code[j]
            ok := (c >= 'A' && c <= 'Z') || (c >= '2' && c <= '9')
            assert.True(t, ok, "unexpected character %q in code %s", c, code)
            assert.NotContains(t, "0O1I", string(c))
        }
        seen[code] = true
    }
    // 200 draws from a 32^8 space should not collide.
    assert.Len(t, seen, 200)
}

func TestNormalizeCode(t *testing.T) {
    got, err := NormalizeCode("  ab23cdfg ")
    require.NoError(t, err)
    assert.Equal(t, "AB23CDFG", got)

    // Idempotent: normalizing the output returns it unchanged.
    again, err := NormalizeCode(got)
    require.NoError(t, err)
    assert.Equal(t, got, again)
}

func TestNormalizeCodeRejects(t *testing.T) {
    cases := []string{
        "",
        "SHORT",
        "TOOLONGCODE",
        "AB23CD0G", // 0 not in alphabet range
        "AB23CD1G", // 1 not in alphabet range
        "AB23CD-G",
        "AB23CD G",
    }
    for _, raw := range cases {
        _, err := NormalizeCode(raw)
        assert.ErrorIs(t, err, ErrBadCode, "input %q", raw)
    }
}
