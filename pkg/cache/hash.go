package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey returns "prefix:<sha256>" over the JSON encoding of parts. Option
// structs are part of the key, so any new option field changes it.
func hashKey(prefix string, parts ...any) string {
	h := sha256.New()
	// Encoding plain option structs and strings cannot fail.
	_ = json.NewEncoder(h).Encode(parts)
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data. Diagrams are hashed this way before
// being turned into cache keys and ETags.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
