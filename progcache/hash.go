package progcache

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// ContentHash digests everything that determines a compiled binary: the
// device identity string, the full rendered source, and the compile
// options. NUL separators keep adjacent fields from aliasing into the same
// digest.
func ContentHash(identity, source, options string) string {
	h := sha256.New()
	io.WriteString(h, identity)
	h.Write([]byte{0})
	io.WriteString(h, source)
	h.Write([]byte{0})
	io.WriteString(h, options)
	return hex.EncodeToString(h.Sum(nil))
}
