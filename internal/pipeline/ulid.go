package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: 26-character Crockford Base32 strings with a
// millisecond timestamp prefix, so IDs sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func generateULID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in remaining 10 bytes, with a sequence counter in bytes
	// 6-7 so two IDs in the same millisecond stay distinct and ordered.
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	// Crockford Base32 over the 128 bits, consumed 5 bits at a time
	// from the top. 26 output characters cover 130 bits; the first
	// character encodes only the top 3 bits.
	var out [26]byte
	bits := uint(130)
	for i := range out {
		bits -= 5
		var chunk byte
		for j := uint(0); j < 5; j++ {
			bit := bits + 4 - j
			if bit >= 128 {
				continue
			}
			pos := 127 - bit
			if b[pos/8]&(1<<(7-pos%8)) != 0 {
				chunk |= 1 << (4 - j)
			}
		}
		out[i] = crockford[chunk]
	}
	return string(out[:])
}
