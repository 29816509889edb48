package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/mezonai/blackball/db"
	"github.com/mezonai/blackball/transaction"
	"github.com/mezonai/blackball/types"
)

// SetGenesisHash records the chain identity. It is written once.
func (l *Ledger) SetGenesisHash(h types.Hash) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.provider.Get([]byte(MetaKeyGenesis))
	if err != nil {
		return fmt.Errorf("could not read genesis hash: %w", err)
	}
	if existing != nil {
		if len(existing) != types.HashSize || types.Hash(existing) != h {
			return fmt.Errorf("ledger already belongs to genesis %x", existing)
		}
		return nil
	}
	return l.provider.Put([]byte(MetaKeyGenesis), h[:])
}

// Append stores a transaction at the next sequence number and assigns global
// indices to its outputs. The first appended transaction defines the genesis
// hash unless one was set before.
func (l *Ledger) Append(tx *transaction.Transaction, height uint64) (types.Hash, uint64, error) {
	if err := tx.Validate(); err != nil {
		return types.Hash{}, 0, fmt.Errorf("invalid transaction: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	seq, err := l.NextSequence()
	if err != nil {
		return types.Hash{}, 0, err
	}

	blob := tx.Bytes()
	txid := transaction.HashBlob(blob)

	genesis, err := l.provider.Get([]byte(MetaKeyGenesis))
	if err != nil {
		return types.Hash{}, 0, fmt.Errorf("could not read genesis hash: %w", err)
	}

	// output indices are allocated per amount; an amount may repeat inside one transaction
	counts := make(map[uint64]uint64)
	for _, out := range tx.Outputs {
		if _, ok := counts[out.Amount]; ok {
			continue
		}
		v, err := l.provider.Get(outCountKey(out.Amount))
		if err != nil {
			return types.Hash{}, 0, fmt.Errorf("could not read output count: %w", err)
		}
		if len(v) == 8 {
			counts[out.Amount] = binary.BigEndian.Uint64(v)
		} else {
			counts[out.Amount] = 0
		}
	}

	err = l.txm.WithBatch(func(batch db.DatabaseBatch) error {
		meta := make([]byte, 0, txMetaSize)
		meta = append(meta, txid[:]...)
		meta = append(meta, be64(height)...)

		batch.Put(txKey(seq), blob)
		batch.Put(txMetaKey(seq), meta)
		for _, out := range tx.Outputs {
			idx := counts[out.Amount]
			batch.Put(outputKey(out.Amount, idx), out.Key[:])
			counts[out.Amount] = idx + 1
		}
		for amount, count := range counts {
			batch.Put(outCountKey(amount), be64(count))
		}
		batch.Put([]byte(MetaKeyNextSeq), be64(seq+1))
		if genesis == nil {
			batch.Put([]byte(MetaKeyGenesis), txid[:])
		}
		return nil
	})
	if err != nil {
		return types.Hash{}, 0, fmt.Errorf("failed to append transaction %s: %w", txid, err)
	}

	return txid, seq, nil
}

// OutputCount returns how many outputs of the given amount exist.
func (l *Ledger) OutputCount(amount uint64) (uint64, error) {
	v, err := l.provider.Get(outCountKey(amount))
	if err != nil {
		return 0, err
	}
	if len(v) != 8 {
		return 0, nil
	}
	return binary.BigEndian.Uint64(v), nil
}
