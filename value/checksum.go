package value

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// Checksum computes a structural FNV-1a hash of a value, returned as a hex
// string. Object fields are folded in sorted key order so that two
// structurally equal values always produce the same checksum.
//
// The checksum is an internal, non-cryptographic integrity aid: it is stable
// for a given valkit version but is not a portable wire format.
func Checksum(v Value) string {
	h := fnv.New64a()
	hashValue(h, v)
	return fmt.Sprintf("%x", h.Sum64())
}

type hasher interface {
	Write(p []byte) (int, error)
}

func hashValue(h hasher, v Value) {
	var tag [1]byte
	tag[0] = byte(v.kind)
	h.Write(tag[:])

	switch v.kind {
	case KindBool:
		if v.b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case KindNumber:
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.n))
		h.Write(buf[:])
	case KindString:
		h.Write([]byte(v.s))
	case KindArray:
		for _, e := range v.a {
			hashValue(h, e)
		}
	case KindObject:
		for _, k := range v.Keys() {
			h.Write([]byte(k))
			hashValue(h, v.o[k])
		}
	}
}
