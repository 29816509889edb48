package blackball

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/transaction"
	"github.com/mezonai/blackball/types"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var errNoOutput = errors.New("no such output")

// memLedger serves transactions from memory. Output keys are derived from the
// output reference, so any reference resolves unless listed in missing.
type memLedger struct {
	txs     []*transaction.Transaction
	missing map[types.OutputRef]bool
}

func (l *memLedger) ForEachTransaction(start uint64, visit func(seq uint64, tx *transaction.Transaction, txid types.Hash, height uint64) bool) (uint64, bool, error) {
	for seq := start; seq < uint64(len(l.txs)); seq++ {
		tx := l.txs[seq]
		if !visit(seq, tx, tx.Hash(), seq) {
			return seq + 1, seq+1 >= uint64(len(l.txs)), nil
		}
	}
	if start > uint64(len(l.txs)) {
		return start, true, nil
	}
	return uint64(len(l.txs)), true, nil
}

func (l *memLedger) OutputKey(amount, index uint64) (types.PublicKey, error) {
	if l.missing[types.OutputRef{Amount: amount, Index: index}] {
		return types.PublicKey{}, errNoOutput
	}
	return pkOf(amount, index), nil
}

func pkOf(amount, index uint64) types.PublicKey {
	var pk types.PublicKey
	binary.BigEndian.PutUint64(pk[0:8], amount)
	binary.BigEndian.PutUint64(pk[8:16], index)
	pk[31] = 0xbb
	return pk
}

func kiOf(b byte) types.KeyImage {
	return types.KeyImage{b, 0xee}
}

func ref(amount, index uint64) types.OutputRef {
	return types.OutputRef{Amount: amount, Index: index}
}

// memFlags records flagged keys.
type memFlags struct {
	keys map[types.PublicKey]bool
	err  error
}

func newMemFlags() *memFlags {
	return &memFlags{keys: make(map[types.PublicKey]bool)}
}

func (f *memFlags) MarkBlackballed(key types.PublicKey) error {
	if f.err != nil {
		return f.err
	}
	f.keys[key] = true
	return nil
}

// chain builds a list of transactions with one ring input each.
type chain struct {
	txs []*transaction.Transaction
}

// spend adds a ring input over the given absolute output indices.
func (c *chain) spend(amount uint64, ki byte, absolute ...uint64) *chain {
	return c.spendRelative(amount, ki, types.AbsoluteToRelative(absolute)...)
}

// spendRelative adds a ring input with raw relative offsets, as found on the ledger.
func (c *chain) spendRelative(amount uint64, ki byte, offsets ...uint64) *chain {
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(len(c.txs)))
	c.txs = append(c.txs, &transaction.Transaction{
		Version: 1,
		Inputs: []transaction.Input{{
			Type:       transaction.InputTypeKey,
			Amount:     amount,
			KeyOffsets: types.Ring(offsets),
			KeyImage:   kiOf(ki),
		}},
		Extra: nonce,
	})
	return c
}

func (c *chain) ledger(n int) *memLedger {
	return &memLedger{txs: c.txs[:n]}
}

func run(t *testing.T, st *State, flags FlagStore, opts Options, readers ...LedgerReader) Report {
	t.Helper()
	a := newTestAnalyzer(t, st, flags, opts, readers...)
	report, err := a.Run(context.Background(), context.Background())
	require.NoError(t, err)
	return report
}

func newTestAnalyzer(t *testing.T, st *State, flags FlagStore, opts Options, readers ...LedgerReader) *Analyzer {
	t.Helper()
	sources := make([]Source, len(readers))
	for i, r := range readers {
		sources[i] = Source{ID: string(rune('A' + i)), Reader: r}
	}
	a, err := NewAnalyzer(st, sources, flags, opts)
	require.NoError(t, err)
	return a
}

// mixedChain exercises every rule. Its final spent set is mixedSpent.
func mixedChain() *chain {
	c := &chain{}
	c.spend(0, 1, 42)
	c.spend(0, 2, 5, 7, 9)
	c.spend(0, 3, 5, 7, 9)
	c.spend(0, 4, 42, 43)
	c.spend(0, 5, 5, 7, 9)
	c.spend(0, 6, 1, 3, 6)
	c.spend(0, 6, 1, 6)
	c.spend(0, 7, 6)
	c.spend(0, 8, 43, 44, 45)
	c.spend(0, 9, 45)
	c.spend(7, 10, 3)
	c.spend(0, 11, 50, 51)
	c.spend(0, 11, 51, 52)
	c.spendRelative(0, 12, 60, 0, 1)
	c.spend(0, 13, 60)
	return c
}

var mixedSpent = []types.OutputRef{
	ref(0, 1), ref(0, 5), ref(0, 6), ref(0, 7), ref(0, 9),
	ref(0, 42), ref(0, 43), ref(0, 44), ref(0, 45),
	ref(0, 51), ref(0, 60), ref(0, 61),
	ref(7, 3),
}
