package transaction

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/mezonai/blackball/jsonx"
	"github.com/mezonai/blackball/types"
)

const (
	InputTypeGen = "gen"
	InputTypeKey = "key"
)

// Transaction is the prefix of a ledger transaction: everything the ring
// analysis needs, without signatures.
type Transaction struct {
	Version uint64   `json:"version"`
	Inputs  []Input  `json:"vin"`
	Outputs []Output `json:"vout"`
	Extra   []byte   `json:"extra,omitempty"`
}

// Input is either a coinbase input (gen) or a ring input spending one of the
// outputs referenced by KeyOffsets (key).
type Input struct {
	Type       string         `json:"type"`
	Height     uint64         `json:"height,omitempty"`
	Amount     uint64         `json:"amount,omitempty"`
	KeyOffsets types.Ring     `json:"key_offsets,omitempty"`
	KeyImage   types.KeyImage `json:"key_image"`
}

type Output struct {
	Amount uint64          `json:"amount"`
	Key    types.PublicKey `json:"key"`
}

// IsRingInput reports whether the input is signed by a ring.
func (in *Input) IsRingInput() bool {
	return in.Type == InputTypeKey
}

// Bytes returns the canonical blob of the transaction as stored on the ledger.
func (tx *Transaction) Bytes() []byte {
	b, _ := jsonx.Marshal(tx)
	return b
}

// Hash is the Keccak-256 of the transaction blob.
func (tx *Transaction) Hash() types.Hash {
	return HashBlob(tx.Bytes())
}

// HashBlob hashes a raw blob the way transaction ids are computed.
func HashBlob(blob []byte) types.Hash {
	var h types.Hash
	k := sha3.NewLegacyKeccak256()
	k.Write(blob)
	copy(h[:], k.Sum(nil))
	return h
}

// Validate checks the structural constraints the analysis relies on.
func (tx *Transaction) Validate() error {
	for i := range tx.Inputs {
		in := &tx.Inputs[i]
		switch in.Type {
		case InputTypeGen:
		case InputTypeKey:
			if len(in.KeyOffsets) == 0 {
				return fmt.Errorf("input %d: empty ring", i)
			}
		default:
			return fmt.Errorf("input %d: unknown input type %q", i, in.Type)
		}
	}
	return nil
}

// Decode parses a transaction blob.
func Decode(blob []byte) (*Transaction, error) {
	var tx Transaction
	if err := jsonx.Unmarshal(blob, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return &tx, nil
}
