package instanceid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// randomBytes is the length of the random payload of an id. 6 bytes yields
// 12 hex characters, which is plenty for a single-process instance table.
const randomBytes = 6

// New mints a fresh id for the given category prefix.
func New(prefix string) string {
	buf := make([]byte, randomBytes)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform entropy source is broken.
		panic(fmt.Sprintf("instanceid: reading random source: %v", err))
	}
	return prefix + "_" + hex.EncodeToString(buf)
}

// Prefix extracts the category prefix from an id. The second return value
// reports whether the id has the canonical `{prefix}_{hex}` shape.
func Prefix(id string) (string, bool) {
	idx := strings.LastIndex(id, "_")
	if idx <= 0 || idx == len(id)-1 {
		return "", false
	}
	return id[:idx], true
}
