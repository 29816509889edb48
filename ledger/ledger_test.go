package ledger

import (
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/blackball/db"
	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/transaction"
	"github.com/mezonai/blackball/types"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newMemLedger(t *testing.T) *Ledger {
	t.Helper()
	provider, err := db.NewMemLevelDBProvider()
	require.NoError(t, err)
	l := New(provider)
	t.Cleanup(l.MustClose)
	return l
}

func coinbase(height uint64, amounts ...uint64) *transaction.Transaction {
	tx := &transaction.Transaction{
		Version: 1,
		Inputs:  []transaction.Input{{Type: transaction.InputTypeGen, Height: height}},
	}
	for i, a := range amounts {
		var pk types.PublicKey
		pk[0] = byte(height)
		pk[1] = byte(i)
		tx.Outputs = append(tx.Outputs, transaction.Output{Amount: a, Key: pk})
	}
	return tx
}

func TestAppend_AssignsIndicesPerAmount(t *testing.T) {
	l := newMemLedger(t)

	txid0, seq, err := l.Append(coinbase(0, 0, 0, 5), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), seq)

	_, seq, err = l.Append(coinbase(1, 0, 5), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	count, err := l.OutputCount(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
	count, err = l.OutputCount(5)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	pk, err := l.OutputKey(0, 2)
	require.NoError(t, err)
	assert.Equal(t, byte(1), pk[0])
	assert.Equal(t, byte(0), pk[1])

	_, err = l.OutputKey(0, 3)
	assert.True(t, errors.Is(err, ErrOutputNotFound))

	genesis, err := l.GenesisHash()
	require.NoError(t, err)
	assert.Equal(t, txid0, genesis)

	next, err := l.NextSequence()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next)
}

func TestSetGenesisHash_WrittenOnce(t *testing.T) {
	l := newMemLedger(t)

	_, err := l.GenesisHash()
	assert.True(t, errors.Is(err, ErrLedgerUnavailable))

	require.NoError(t, l.SetGenesisHash(types.Hash{1}))
	require.NoError(t, l.SetGenesisHash(types.Hash{1}))
	assert.Error(t, l.SetGenesisHash(types.Hash{2}))

	_, _, err = l.Append(coinbase(0, 1), 0)
	require.NoError(t, err)
	genesis, err := l.GenesisHash()
	require.NoError(t, err)
	assert.Equal(t, types.Hash{1}, genesis)
}

func TestForEachTransaction_ResumeAndStop(t *testing.T) {
	l := newMemLedger(t)
	for h := uint64(0); h < 5; h++ {
		_, _, err := l.Append(coinbase(h, 0), h)
		require.NoError(t, err)
	}

	var seen []uint64
	next, completed, err := l.ForEachTransaction(2, func(seq uint64, tx *transaction.Transaction, _ types.Hash, height uint64) bool {
		assert.Equal(t, seq, height)
		seen = append(seen, seq)
		return true
	})
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, uint64(5), next)
	assert.Equal(t, []uint64{2, 3, 4}, seen)

	seen = nil
	next, completed, err = l.ForEachTransaction(0, func(seq uint64, _ *transaction.Transaction, _ types.Hash, _ uint64) bool {
		seen = append(seen, seq)
		return seq < 1
	})
	require.NoError(t, err)
	assert.False(t, completed)
	assert.Equal(t, uint64(2), next)
	assert.Equal(t, []uint64{0, 1}, seen)

	next, completed, err = l.ForEachTransaction(5, func(uint64, *transaction.Transaction, types.Hash, uint64) bool {
		t.Fatal("no transaction expected")
		return true
	})
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, uint64(5), next)

	// stopping on the last transaction still reaches the end
	next, completed, err = l.ForEachTransaction(3, func(seq uint64, _ *transaction.Transaction, _ types.Hash, _ uint64) bool {
		return seq < 4
	})
	require.NoError(t, err)
	assert.True(t, completed)
	assert.Equal(t, uint64(5), next)
}

func TestForEachTransaction_TxidMatchesBlob(t *testing.T) {
	l := newMemLedger(t)
	tx := coinbase(0, 1)
	txid, _, err := l.Append(tx, 0)
	require.NoError(t, err)
	assert.Equal(t, tx.Hash(), txid)

	_, _, err = l.ForEachTransaction(0, func(_ uint64, got *transaction.Transaction, id types.Hash, _ uint64) bool {
		assert.Equal(t, txid, id)
		assert.Equal(t, tx.Outputs, got.Outputs)
		return true
	})
	require.NoError(t, err)
}

func TestForEachTransaction_Malformed(t *testing.T) {
	provider, err := db.NewMemLevelDBProvider()
	require.NoError(t, err)
	l := New(provider)
	defer l.MustClose()

	_, _, err = l.Append(coinbase(0, 1), 0)
	require.NoError(t, err)
	require.NoError(t, provider.Put(txKey(1), []byte("{not json")))
	require.NoError(t, provider.Put(txMetaKey(1), make([]byte, txMetaSize)))

	visited := 0
	next, completed, err := l.ForEachTransaction(0, func(uint64, *transaction.Transaction, types.Hash, uint64) bool {
		visited++
		return true
	})
	assert.True(t, errors.Is(err, ErrMalformedTransaction))
	assert.False(t, completed)
	assert.Equal(t, 1, visited)
	assert.Equal(t, uint64(1), next)
}

func TestAppend_RejectsInvalid(t *testing.T) {
	l := newMemLedger(t)
	tx := &transaction.Transaction{Inputs: []transaction.Input{{Type: transaction.InputTypeKey}}}
	_, _, err := l.Append(tx, 0)
	assert.Error(t, err)

	next, err := l.NextSequence()
	require.NoError(t, err)
	assert.Zero(t, next)
}

func TestImportJSONLines(t *testing.T) {
	l := newMemLedger(t)
	genesis := strings.Repeat("11", types.HashSize)
	ki := strings.Repeat("22", types.HashSize)
	pk := strings.Repeat("33", types.HashSize)

	input := `# test ledger
{"genesis":"` + genesis + `"}
{"height":0,"tx":{"version":1,"vin":[{"type":"gen","height":0}],"vout":[{"amount":0,"key":"` + pk + `"}]}}

{"height":1,"tx":{"version":1,"vin":[{"type":"key","amount":0,"key_offsets":[0],"key_image":"` + ki + `"}],"vout":[]}}
`
	n, err := l.ImportJSONLines(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	g, err := l.GenesisHash()
	require.NoError(t, err)
	assert.Equal(t, genesis, g.String())

	key, err := l.OutputKey(0, 0)
	require.NoError(t, err)
	assert.Equal(t, pk, key.String())

	_, err = l.ImportJSONLines(strings.NewReader("{\"height\":2,\"tx\":{\"vin\":[{\"type\":\"bogus\"}]}}\n"))
	assert.Error(t, err)
}

func TestOpen_MissingReadOnly(t *testing.T) {
	_, err := Open(t.TempDir(), "", true)
	assert.True(t, errors.Is(err, ErrLedgerUnavailable))
}

func TestOpen_ReopenDetectsEngine(t *testing.T) {
	dir := t.TempDir()
	l, err := Open(dir, db.BoltDB, false)
	require.NoError(t, err)
	_, _, err = l.Append(coinbase(0, 1), 0)
	require.NoError(t, err)
	l.MustClose()

	l, err = Open(dir, "", true)
	require.NoError(t, err)
	defer l.MustClose()
	next, err := l.NextSequence()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), next)
	assert.Equal(t, CanonicalPath(dir), l.Path())
}
