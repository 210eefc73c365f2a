// Package claim implements the deal-claim lifecycle primitives: claim code
// generation and normalization, lazy status evaluation against the expiry
// clock, and the QR payload exchanged between the customer app and the
// restaurant's redemption screen.
package claim

import (
    "crypto/rand"
    "errors"
    "strings"
)

// CodeLength is the fixed length of a claim code.
const CodeLength = 8

// codeAlphabet excludes 0/O and 1/I to keep codes unambiguous when read
// aloud or typed at the point of sale.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ErrBadCode is returned by NormalizeCode for input that cannot be a claim
// code: wrong length after trimming, or characters outside the alphabet.
var ErrBadCode = errors.New("invalid claim code")

// NewCode returns a random 8-character claim code drawn from codeAlphabet
// using crypto/rand.  Uniqueness among outstanding claims is enforced by the
// database unique index; callers retry on the rare collision.
func NewCode() (string, error) {
    buf := make([]byte, CodeLength)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    out := make([]byte, CodeLength)
    for i, b := range buf {
        out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
    }
    return string(out), nil
}

// NormalizeCode canonicalizes raw user input into claim-code form: trimmed
// and upper-cased.  It returns ErrBadCode unless the result is exactly
// CodeLength characters of A-Z / 2-9.  Normalizing an already-normalized
// code returns it unchanged, so the operation is idempotent.
func NormalizeCode(raw string) (string, error) {
    code := strings.ToUpper(strings.TrimSpace(raw))
    if len(code) != CodeLength {
        return "", ErrBadCode
    }
    for i := 0; i < len(code); i++ {
        c := code[i]
        if (c < 'A' || c > 'Z') && (c < '2' || c > '9') {
            return "", ErrBadCode
        }
    }
    return code, nil
}
