package statehash

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// Digest returns the hex-encoded SHA-1 of the canonical JSON serialization
// of v. Map keys are emitted in sorted order, so two values with identical
// contents always produce the same digest regardless of insertion order.
//
// SHA-1 is used as a change-detection fingerprint, not for security.
func Digest(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("state not serializable: %w", err)
	}
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}

// DigestNames digests a set of names. The input is copied and sorted first,
// so the result is independent of iteration order.
func DigestNames(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	// A []string always serializes.
	digest, _ := Digest(sorted)
	return digest
}

// DigestPairs digests a name-to-digest mapping using key-sorted canonical
// serialization. Two maps with identical key/value pairs hash identically.
func DigestPairs(pairs map[string]string) string {
	digest, _ := Digest(pairs)
	return digest
}
