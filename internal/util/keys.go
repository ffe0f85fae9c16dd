package util

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sort"
)

// SortedFields returns the field names of m in ascending order.
func SortedFields(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Fingerprint returns a short, order-independent digest of a hash snapshot.
// Equal field sets with equal payloads produce equal fingerprints.
func Fingerprint(m map[string][]byte) string {
	h := sha256.New()
	var u4 [4]byte
	for _, k := range SortedFields(m) {
		binary.BigEndian.PutUint32(u4[:], uint32(len(k)))
		h.Write(u4[:])
		h.Write([]byte(k))
		binary.BigEndian.PutUint32(u4[:], uint32(len(m[k])))
		h.Write(u4[:])
		h.Write(m[k])
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}
