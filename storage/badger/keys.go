package badger

import (
	"encoding/binary"

	"github.com/poiesic/retrievit/core"
)

// Key prefixes for different data types
const (
	embeddingPrefix = "embvec"
)

// makeEmbeddingKey generates a key for a cached embedding by ID.
// The ID is written in BigEndian order so lexicographic sort matches
// numeric order.
func makeEmbeddingKey(id core.ID) []byte {
	prefix := embeddingPrefix + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}
