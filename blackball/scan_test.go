package blackball

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/blackball/types"
)

func TestScan_InterruptedKeepsCheckpoint(t *testing.T) {
	c := mixedChain()
	st := NewState()
	a := newTestAnalyzer(t, st, newMemFlags(), Options{}, c.ledger(len(c.txs)), c.ledger(len(c.txs)))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := a.Run(cancelled, context.Background())
	require.NoError(t, err)

	assert.True(t, report.ScanInterrupted)
	assert.Equal(t, uint64(1), st.ProcessedHeights["A"])
	assert.NotContains(t, st.ProcessedHeights, "B", "later sources are skipped once the scan is interrupted")
	assert.True(t, st.IsSpent(ref(0, 42)))
}

func TestScan_ResumeMatchesSingleRun(t *testing.T) {
	c := mixedChain()
	n := len(c.txs)

	reference := NewState()
	run(t, reference, newMemFlags(), Options{}, c.ledger(n))
	require.Equal(t, mixedSpent, reference.SpentOutputs())

	for m := 0; m <= n; m++ {
		first := NewState()
		run(t, first, newMemFlags(), Options{}, c.ledger(m))
		require.Equal(t, uint64(m), first.ProcessedHeights["A"])

		second, err := DecodeState(mustEncodeState(t, first))
		require.NoError(t, err)
		run(t, second, newMemFlags(), Options{}, c.ledger(n))

		assert.Equal(t, reference.SpentOutputs(), second.SpentOutputs(), "split at %d", m)
		assert.Equal(t, reference.RingInstances, second.RingInstances, "split at %d", m)
		assert.Equal(t, reference.RelativeRings, second.RelativeRings, "split at %d", m)
	}
}

func TestScan_ResumeMatchesSingleRunWithFork(t *testing.T) {
	primary := &chain{}
	primary.spend(0, 1, 1, 2, 3)
	primary.spend(0, 2, 3)
	fork := &chain{}
	fork.spend(0, 1, 2, 3)

	reference := NewState()
	run(t, reference, newMemFlags(), Options{}, primary.ledger(2), fork.ledger(1))
	require.Equal(t, []types.OutputRef{ref(0, 2), ref(0, 3)}, reference.SpentOutputs())

	for mp := 0; mp <= len(primary.txs); mp++ {
		for mf := 0; mf <= len(fork.txs); mf++ {
			first := NewState()
			run(t, first, newMemFlags(), Options{}, primary.ledger(mp), fork.ledger(mf))

			second, err := DecodeState(mustEncodeState(t, first))
			require.NoError(t, err)
			run(t, second, newMemFlags(), Options{}, primary.ledger(2), fork.ledger(1))

			assert.Equal(t, reference.SpentOutputs(), second.SpentOutputs(), "split at %d/%d", mp, mf)
			assert.Equal(t, reference.RelativeRings, second.RelativeRings, "split at %d/%d", mp, mf)
			assert.Equal(t, reference.RingInstances, second.RingInstances, "split at %d/%d", mp, mf)
		}
	}
}

func TestScan_CancelledOnLastTransaction(t *testing.T) {
	c := &chain{}
	c.spend(0, 1, 4)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	st := NewState()
	a := newTestAnalyzer(t, st, newMemFlags(), Options{}, c.ledger(1))
	report, err := a.Run(cancelled, context.Background())
	require.NoError(t, err)
	assert.False(t, report.ScanInterrupted, "nothing was left to scan")
	assert.Equal(t, uint64(1), st.ProcessedHeights["A"])

	st = NewState()
	a = newTestAnalyzer(t, st, newMemFlags(), Options{}, c.ledger(1), c.ledger(1))
	report, err = a.Run(cancelled, context.Background())
	require.NoError(t, err)
	assert.True(t, report.ScanInterrupted)
	assert.NotContains(t, st.ProcessedHeights, "B")
}

func TestScan_ResumeAfterInterruption(t *testing.T) {
	c := mixedChain()
	n := len(c.txs)
	st := NewState()

	for i := 0; i < 3; i++ {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		a := newTestAnalyzer(t, st, newMemFlags(), Options{}, c.ledger(n))
		_, err := a.Run(cancelled, context.Background())
		require.NoError(t, err)
		assert.Equal(t, uint64(i+1), st.ProcessedHeights["A"])
	}

	run(t, st, newMemFlags(), Options{}, c.ledger(n))
	assert.Equal(t, mixedSpent, st.SpentOutputs())
	assert.Equal(t, uint64(n), st.ProcessedHeights["A"])
}

func TestScan_PeriodicFlush(t *testing.T) {
	c := mixedChain()
	path := filepath.Join(t.TempDir(), StateFileName)
	st := NewState()
	a := newTestAnalyzer(t, st, newMemFlags(), Options{FlushEvery: 4, StatePath: path}, c.ledger(len(c.txs)))

	require.NoError(t, a.Scan(context.Background()))

	_, err := os.Stat(path)
	require.NoError(t, err)
	flushed := LoadState(path)
	// the last flush happened after twelve transactions
	assert.Equal(t, uint64(12), flushed.ProcessedHeights["A"])
}

func TestScan_EmptyLedger(t *testing.T) {
	st := NewState()
	report := run(t, st, newMemFlags(), Options{}, &memLedger{})

	assert.Zero(t, report.Scanned["A"])
	assert.Zero(t, st.ProcessedHeights["A"])
	assert.Empty(t, st.Spent)
}
