package common

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/mezonai/blackball/types"
)

const (
	KeyFormatHex    = "hex"
	KeyFormatBase58 = "base58"
)

// FormatKey renders an output public key in the given format.
func FormatKey(pk types.PublicKey, format string) (string, error) {
	switch format {
	case "", KeyFormatHex:
		return pk.String(), nil
	case KeyFormatBase58:
		return base58.Encode(pk[:]), nil
	}
	return "", fmt.Errorf("unknown key format %q", format)
}

// ParseKey accepts a public key in hex, with or without 0x, or in base58.
// 64 character strings are always read as hex.
func ParseKey(s string) (types.PublicKey, error) {
	s = strings.TrimSpace(s)
	if len(strings.TrimPrefix(s, "0x")) == 2*types.HashSize {
		return types.ParsePublicKey(s)
	}

	var pk types.PublicKey
	b, err := base58.Decode(s)
	if err != nil {
		return pk, fmt.Errorf("failed to decode key %q: %w", s, err)
	}
	if len(b) != types.HashSize {
		return pk, fmt.Errorf("invalid key length %d, expected %d bytes", len(b), types.HashSize)
	}
	copy(pk[:], b)
	return pk, nil
}
