package cache

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// HashSource computes the strong content-hash of Markdown source text used
// as the AST-cache key (spec §4.6: "a strong hash of the source text").
// BLAKE2b-256 is used instead of SHA-256 -- it is already a direct teacher
// dependency (golang.org/x/crypto), repurposed here from asset-hashing to
// render-cache keys.
func HashSource(source []byte) string {
	sum := blake2b.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// HashOptions computes a BLAKE2b-256 hash over a caller-provided sequence of
// already-stringified option fields, used as the options component of the
// HTML-cache key (spec §4.6: "Key: (source_hash, options_hash)"). Taking
// plain strings rather than an htmlrender.Options value keeps this package
// independent of any one options type.
func HashOptions(fields ...string) string {
	h, _ := blake2b.New256(nil)
	for _, f := range fields {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// CombineKeys joins a source hash and an options hash into the composite
// HTML-cache key.
func CombineKeys(sourceHash, optionsHash string) string {
	return sourceHash + ":" + optionsHash
}
