package changelog

import (
	"encoding/binary"
	"fmt"
)

// CounterKey holds the next sequence number to assign.
var CounterKey = []byte("counter")

const seqLen = 8

// EntryKey builds the key of the changeset stored at seq.
func EntryKey(seq uint64) []byte {
	var k [seqLen]byte
	binary.BigEndian.PutUint64(k[:], seq)
	return k[:]
}

func seqFromKey(k []byte) (uint64, bool) {
	if len(k) != seqLen {
		return 0, false
	}
	return binary.BigEndian.Uint64(k), true
}

// EncodeCounter encodes the value stored under CounterKey.
func EncodeCounter(next uint64) []byte {
	var b [seqLen]byte
	binary.LittleEndian.PutUint64(b[:], next)
	return b[:]
}

func decodeCounter(b []byte) (uint64, error) {
	if len(b) != seqLen {
		return 0, fmt.Errorf("%w: counter is %d bytes, want %d", ErrCorruptState, len(b), seqLen)
	}
	return binary.LittleEndian.Uint64(b), nil
}
