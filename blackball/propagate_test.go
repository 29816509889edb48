package blackball

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/blackball/types"
)

func TestPropagate_PigeonholeAfterScan(t *testing.T) {
	c := &chain{}
	c.spend(0, 1, 10, 11, 12, 13)
	c.spend(0, 2, 10)
	c.spend(0, 3, 11)
	c.spend(0, 4, 12)
	st := NewState()
	flags := newMemFlags()
	a := newTestAnalyzer(t, st, flags, Options{}, c.ledger(4))

	require.NoError(t, a.Scan(context.Background()))
	assert.Equal(t, []types.OutputRef{ref(0, 10), ref(0, 11), ref(0, 12)}, st.SpentOutputs())
	assert.False(t, st.IsSpent(ref(0, 13)), "pigeonhole must wait for the secondary pass")

	require.NoError(t, a.Propagate(context.Background()))
	assert.True(t, st.IsSpent(ref(0, 13)))
	assert.True(t, flags.keys[pkOf(0, 13)])
	assert.Empty(t, st.NewlySpent)
}

func TestPropagate_ReachesFixpoint(t *testing.T) {
	c := &chain{}
	c.spend(0, 1, 20)
	c.spend(0, 2, 20, 21)
	c.spend(0, 3, 21, 22)
	c.spend(0, 4, 22, 23, 24)
	c.spend(0, 5, 24)
	st := NewState()

	run(t, st, newMemFlags(), Options{}, c.ledger(5))

	assert.Equal(t, []types.OutputRef{ref(0, 20), ref(0, 21), ref(0, 22), ref(0, 23), ref(0, 24)}, st.SpentOutputs())
}

func TestPropagate_InterruptedRequeues(t *testing.T) {
	c := mixedChain()
	st := NewState()
	a := newTestAnalyzer(t, st, newMemFlags(), Options{}, c.ledger(len(c.txs)))
	require.NoError(t, a.Scan(context.Background()))

	queued := len(st.NewlySpent)
	require.Greater(t, queued, 1)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Propagate(cancelled))

	report := a.Report()
	assert.True(t, report.PropagationInterrupted)
	assert.NotEmpty(t, st.NewlySpent)
	for _, processed := range st.NewlySpent {
		assert.False(t, processed)
	}

	// a later run picks the queue up from the stored state
	restored, err := DecodeState(mustEncodeState(t, st))
	require.NoError(t, err)
	run(t, restored, newMemFlags(), Options{}, c.ledger(len(c.txs)))

	assert.Equal(t, mixedSpent, restored.SpentOutputs())
	assert.Empty(t, restored.NewlySpent)
}

func TestRun_FlagStoreErrorIsFatal(t *testing.T) {
	c := (&chain{}).spend(0, 1, 1)
	flags := newMemFlags()
	flags.err = assert.AnError

	a := newTestAnalyzer(t, NewState(), flags, Options{}, c.ledger(1))
	_, err := a.Run(context.Background(), context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRun_UnresolvedOutputIsFatal(t *testing.T) {
	c := (&chain{}).spend(0, 1, 1)
	l := c.ledger(1)
	l.missing = map[types.OutputRef]bool{ref(0, 1): true}

	st := NewState()
	a := newTestAnalyzer(t, st, newMemFlags(), Options{}, l)
	_, err := a.Run(context.Background(), context.Background())
	assert.ErrorIs(t, err, errNoOutput)
	assert.False(t, st.IsSpent(ref(0, 1)))
	assert.Zero(t, st.ProcessedHeights["A"])
}

func TestRun_MixedChain(t *testing.T) {
	c := mixedChain()
	st := NewState()
	flags := newMemFlags()

	report := run(t, st, flags, Options{}, c.ledger(len(c.txs)))

	assert.Equal(t, mixedSpent, st.SpentOutputs())
	assert.Len(t, flags.keys, len(mixedSpent))
	assert.Equal(t, len(mixedSpent), report.NewlyBlackballed())
	assert.Equal(t, uint64(len(c.txs)), report.Scanned["A"])
	assert.False(t, report.ScanInterrupted)
	assert.False(t, report.PropagationInterrupted)
}

func TestRun_SpentIsMonotonic(t *testing.T) {
	c := mixedChain()
	st := NewState()
	st.Spent[ref(99, 1)] = struct{}{}

	prev := map[types.OutputRef]struct{}{ref(99, 1): {}}
	for n := 1; n <= len(c.txs); n++ {
		run(t, st, newMemFlags(), Options{}, c.ledger(n))
		for r := range prev {
			assert.True(t, st.IsSpent(r), "%s lost after %d transactions", r, n)
		}
		prev = make(map[types.OutputRef]struct{}, len(st.Spent))
		for r := range st.Spent {
			prev[r] = struct{}{}
		}
	}
}

func TestNewAnalyzer_Validation(t *testing.T) {
	src := []Source{{ID: "A", Reader: &memLedger{}}}

	_, err := NewAnalyzer(nil, src, newMemFlags(), Options{})
	assert.Error(t, err)
	_, err = NewAnalyzer(NewState(), nil, newMemFlags(), Options{})
	assert.Error(t, err)
	_, err = NewAnalyzer(NewState(), src, nil, Options{})
	assert.Error(t, err)
}
