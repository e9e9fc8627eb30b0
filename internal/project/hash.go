package project

import (
	"crypto/sha256"
	"os"
)

// Digest is a SHA-256 content hash.
type Digest [32]byte

// Combine hashes content followed by deps. The order of deps matters.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// HashFiles returns the combined digest of the files' contents, in order.
// Watch mode uses it to skip rebuilds when nothing changed.
func HashFiles(paths []string) (Digest, error) {
	parts := make([]Digest, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return Digest{}, err
		}
		parts = append(parts, sha256.Sum256(append([]byte(p+"\x00"), data...)))
	}
	return Combine(Digest{}, parts...), nil
}
