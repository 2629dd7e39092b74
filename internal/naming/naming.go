package naming

// Package naming provides centralized name validation and short deterministic
// content digests used across manifest handling and stored revisions. Keeping
// the logic here allows future changes (length/algorithm) without touching
// call sites.

import (
	"crypto/sha1"
	"fmt"
)

// digestLength defines the hex length of content digests (bits ~ length * 4).
const digestLength = 12

// ShortHash returns the hex SHA1 prefix of length n (clamped to digest size).
func ShortHash(s string, n int) string {
	sum := sha1.Sum([]byte(s))
	h := fmt.Sprintf("%x", sum)
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// ContentDigest returns the short digest identifying manifest source text.
// Two revisions with the same digest carry the same source.
func ContentDigest(source string) string {
	return ShortHash(source, digestLength)
}
