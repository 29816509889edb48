package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HashSize is the size of hashes, key images and public keys on the ledger.
const HashSize = 32

// Hash identifies a transaction or a block.
type Hash [HashSize]byte

// KeyImage is the link tag of a ring input. A key image is never legitimately
// spent twice, so it identifies the spending slot of exactly one output.
type KeyImage [HashSize]byte

// PublicKey is the one-time public key of an output.
type PublicKey [HashSize]byte

func (h Hash) String() string      { return hex.EncodeToString(h[:]) }
func (k KeyImage) String() string  { return hex.EncodeToString(k[:]) }
func (p PublicKey) String() string { return hex.EncodeToString(p[:]) }

func (h Hash) MarshalText() ([]byte, error)      { return []byte(h.String()), nil }
func (k KeyImage) MarshalText() ([]byte, error)  { return []byte(k.String()), nil }
func (p PublicKey) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (h *Hash) UnmarshalText(b []byte) error      { return decodeHex32((*[HashSize]byte)(h), string(b)) }
func (k *KeyImage) UnmarshalText(b []byte) error  { return decodeHex32((*[HashSize]byte)(k), string(b)) }
func (p *PublicKey) UnmarshalText(b []byte) error { return decodeHex32((*[HashSize]byte)(p), string(b)) }

// ParseHash decodes a hex encoded hash, with or without 0x prefix.
func ParseHash(s string) (Hash, error) {
	var h Hash
	err := decodeHex32((*[HashSize]byte)(&h), s)
	return h, err
}

// ParsePublicKey decodes a hex encoded public key.
func ParsePublicKey(s string) (PublicKey, error) {
	var p PublicKey
	err := decodeHex32((*[HashSize]byte)(&p), s)
	return p, err
}

func decodeHex32(dst *[HashSize]byte, s string) error {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != HashSize {
		return fmt.Errorf("invalid length %d, expected %d bytes", len(b), HashSize)
	}
	copy(dst[:], b)
	return nil
}

// OutputRef identifies an output by its denomination and its global index
// among outputs of that denomination. Amount 0 denotes confidential outputs.
type OutputRef struct {
	Amount uint64
	Index  uint64
}

func (o OutputRef) String() string {
	return fmt.Sprintf("amount=%d, index=%d", o.Amount, o.Index)
}

// RingMember is a (txid, key image) pair of a ring that references an output.
type RingMember struct {
	TxID     Hash
	KeyImage KeyImage
}
