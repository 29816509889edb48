package types

import (
	"encoding/binary"
	"sort"
	"strconv"
	"strings"

	"github.com/mezonai/blackball/logx"
)

// Ring is the list of outputs referenced by one ring input. Rings stored on the
// ledger are relative: the first element is absolute and every following
// element is the delta to the previous one.
type Ring []uint64

// RingKey is the byte representation of a ring, usable as a map key.
type RingKey string

// Key returns the content key of the ring.
func (r Ring) Key() RingKey {
	buf := make([]byte, 8*len(r))
	for i, v := range r {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	return RingKey(buf)
}

// Ring decodes the ring from its key.
func (k RingKey) Ring() Ring {
	r := make(Ring, len(k)/8)
	for i := range r {
		r[i] = binary.LittleEndian.Uint64([]byte(k[i*8 : i*8+8]))
	}
	return r
}

// Equal reports whether both rings hold the same values in the same order.
func (r Ring) Equal(other Ring) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i] != other[i] {
			return false
		}
	}
	return true
}

func (r Ring) String() string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, " ")
}

// Clone returns a copy that does not share memory with r.
func (r Ring) Clone() Ring {
	if r == nil {
		return nil
	}
	c := make(Ring, len(r))
	copy(c, r)
	return c
}

// RelativeToAbsolute resolves relative offsets into absolute output indices.
func RelativeToAbsolute(offsets Ring) []uint64 {
	abs := make([]uint64, len(offsets))
	var acc uint64
	for i, off := range offsets {
		acc += off
		abs[i] = acc
	}
	return abs
}

// AbsoluteToRelative sorts the absolute indices and turns them into relative offsets.
func AbsoluteToRelative(abs []uint64) Ring {
	sorted := make([]uint64, len(abs))
	copy(sorted, abs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rel := make(Ring, len(sorted))
	for i := range sorted {
		if i == 0 {
			rel[i] = sorted[i]
			continue
		}
		rel[i] = sorted[i] - sorted[i-1]
	}
	return rel
}

// Canonicalize drops zero deltas after the first element. Some wallets put the
// same output in a ring more than once, which shows up as a zero offset.
// Canonicalize panics on an empty ring.
func Canonicalize(r Ring) Ring {
	c := make(Ring, 0, len(r))
	c = append(c, r[0])
	for _, off := range r[1:] {
		if off != 0 {
			c = append(c, off)
		}
	}
	if len(c) < len(r) {
		logx.Info("RING", "Ring has duplicate member(s): ", r.String())
	}
	return c
}
