/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

// Package fnv1a computes 32-bit FNV-1a hashes, the algorithm clox uses to
// hash ObjString contents. Every string used as a table key gets its hash
// computed once, at creation, and carries it around from then on.
package fnv1a

const (
	offsetBasis uint32 = 2166136261
	prime       uint32 = 16777619
)

// String computes the FNV-1a hash of s.
func String(s string) uint32 {
	hash := offsetBasis
	for i := 0; i < len(s); i++ {
		hash ^= uint32(s[i])
		hash *= prime
	}
	return hash
}

// Bytes computes the FNV-1a hash of b.
func Bytes(b []byte) uint32 {
	hash := offsetBasis
	for _, c := range b {
		hash ^= uint32(c)
		hash *= prime
	}
	return hash
}
