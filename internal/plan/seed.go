package plan

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// subSeed maps (seed, questionID) to a stable int64 so every variant group
// gets its own independent permutation stream. Correlated choices across
// questions would let students infer each other's variants, which is the
// property the whole generator exists to prevent.
func subSeed(seed int64, questionID string) int64 {
	h := sha256.Sum256([]byte(fmt.Sprintf("%d|%s", seed, questionID)))
	v := int64(binary.LittleEndian.Uint64(h[:8]))
	if v < 0 {
		v = -v
	}
	return v
}
