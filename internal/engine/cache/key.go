package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// keyNamespace separates dataset keys from any other key family.
const keyNamespace = "members"

// SourceKey returns the cache key for a dataset source location. Only
// surrounding whitespace is ignored; URL paths are case-sensitive.
func SourceKey(source string) string {
	return hashParts([]string{keyNamespace, strings.TrimSpace(source)})
}

func hashParts(parts []string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
