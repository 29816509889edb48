package blackball

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/blackball/db"
	"github.com/mezonai/blackball/ledger"
	"github.com/mezonai/blackball/store"
	"github.com/mezonai/blackball/transaction"
	"github.com/mezonai/blackball/types"
)

func outputKeyAt(i int) types.PublicKey {
	return types.PublicKey{0xaa, byte(i)}
}

func TestAnalyzer_WithLedgerAndBlackballStore(t *testing.T) {
	provider, err := db.NewMemLevelDBProvider()
	require.NoError(t, err)
	l := ledger.New(provider)
	defer l.MustClose()

	coinbase := &transaction.Transaction{
		Version: 1,
		Inputs:  []transaction.Input{{Type: transaction.InputTypeGen}},
	}
	for i := 0; i < 8; i++ {
		coinbase.Outputs = append(coinbase.Outputs, transaction.Output{Amount: 0, Key: outputKeyAt(i)})
	}
	_, _, err = l.Append(coinbase, 0)
	require.NoError(t, err)

	c := &chain{}
	c.spend(0, 1, 2)
	c.spend(0, 2, 2, 3)
	for i, tx := range c.txs {
		_, _, err := l.Append(tx, uint64(i+1))
		require.NoError(t, err)
	}

	genesis, err := l.GenesisHash()
	require.NoError(t, err)
	flags, err := store.OpenBlackballStore(db.BoltDB, db.DBOptions{Directory: t.TempDir()}, genesis)
	require.NoError(t, err)
	defer flags.MustClose()

	statePath := filepath.Join(t.TempDir(), StateFileName)
	src := []Source{{ID: "primary", Reader: l}}

	a, err := NewAnalyzer(LoadState(statePath), src, flags, Options{})
	require.NoError(t, err)
	report, err := a.Run(context.Background(), context.Background())
	require.NoError(t, err)
	require.NoError(t, StoreState(statePath, a.State()))

	assert.Equal(t, 2, report.NewlyBlackballed())
	for i, want := range map[int]bool{1: false, 2: true, 3: true, 4: false} {
		got, err := flags.IsBlackballed(outputKeyAt(i))
		require.NoError(t, err)
		assert.Equal(t, want, got, "output %d", i)
	}

	// new transactions on the ledger are picked up from the stored checkpoint
	more := &chain{txs: c.txs}
	more.spend(0, 3, 3, 4)
	_, _, err = l.Append(more.txs[len(more.txs)-1], 3)
	require.NoError(t, err)

	a, err = NewAnalyzer(LoadState(statePath), src, flags, Options{})
	require.NoError(t, err)
	report, err = a.Run(context.Background(), context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(1), report.Scanned["primary"])
	assert.Equal(t, 1, report.NewlyBlackballed())
	got, err := flags.IsBlackballed(outputKeyAt(4))
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, uint64(4), a.State().ProcessedHeights["primary"])
}
