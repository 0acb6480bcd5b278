package storage

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/san-kum/submoonsim/internal/physics"
	"lukechampine.com/blake3"
)

// Fingerprint hashes the parameter set with BLAKE3. The input is the
// little-endian bit pattern of each field in Fields order, so equal
// parameters always share a fingerprint.
func Fingerprint(p physics.Params) string {
	fields := p.Fields()
	buf := make([]byte, 0, 8*len(fields))
	for _, f := range fields {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f.Value))
	}
	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:])
}
