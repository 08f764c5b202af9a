package domain

import (
	"strings"

	"github.com/google/uuid"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const idTokenLen = 8

// A v4 UUID fixes byte 6's version nibble and byte 8's variant bits, so the
// token draws only from bytes that carry full entropy.
var idTokenBytes = [idTokenLen]int{0, 1, 2, 3, 4, 5, 7, 9}

// NewID produces a type-prefixed identifier like "tas-V1StGXR8". The prefix
// is the first three letters of the kind; the token is eight base62
// characters derived from a random UUID, giving a ~2^47 space. No uniqueness
// check is made against existing ids.
func NewID(kind string) string {
	prefix := kind
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}

	u := uuid.New()
	var b strings.Builder
	b.Grow(len(prefix) + 1 + idTokenLen)
	b.WriteString(prefix)
	b.WriteByte('-')
	for _, i := range idTokenBytes {
		b.WriteByte(idAlphabet[int(u[i])%len(idAlphabet)])
	}
	return b.String()
}
