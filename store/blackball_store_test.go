package store

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mezonai/blackball/db"
	"github.com/mezonai/blackball/logx"
	"github.com/mezonai/blackball/types"
)

func TestMain(m *testing.M) {
	logx.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func key(b byte) types.PublicKey {
	var pk types.PublicKey
	pk[0] = b
	pk[31] = b
	return pk
}

func TestBlackballStore_MarkAndCheck(t *testing.T) {
	bs, err := OpenBlackballStore("", db.DBOptions{Directory: t.TempDir()}, types.Hash{1})
	require.NoError(t, err)
	defer bs.MustClose()

	ok, err := bs.IsBlackballed(key(1))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, bs.MarkBlackballed(key(1)))
	require.NoError(t, bs.MarkBlackballed(key(1)))
	require.NoError(t, bs.MarkBlackballed(key(3)))
	require.NoError(t, bs.MarkBlackballed(key(2)))

	ok, err = bs.IsBlackballed(key(1))
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := bs.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var keys []types.PublicKey
	require.NoError(t, bs.ForEach(func(k types.PublicKey) bool {
		keys = append(keys, k)
		return true
	}))
	assert.Equal(t, []types.PublicKey{key(1), key(2), key(3)}, keys)

	require.NoError(t, bs.Unblackball(key(2)))
	n, err = bs.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestBlackballStore_NamespacedByGenesis(t *testing.T) {
	provider, err := db.NewMemLevelDBProvider()
	require.NoError(t, err)
	defer provider.Close()

	mainnet, err := NewGenericBlackballStore(provider, types.Hash{1})
	require.NoError(t, err)
	fork, err := NewGenericBlackballStore(provider, types.Hash{2})
	require.NoError(t, err)

	require.NoError(t, mainnet.MarkBlackballed(key(7)))

	ok, err := fork.IsBlackballed(key(7))
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := fork.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = mainnet.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBlackballStore_Persists(t *testing.T) {
	dir := t.TempDir()
	genesis := types.Hash{9}

	bs, err := OpenBlackballStore(db.BoltDB, db.DBOptions{Directory: dir}, genesis)
	require.NoError(t, err)
	require.NoError(t, bs.MarkBlackballed(key(5)))
	bs.MustClose()

	bs, err = OpenBlackballStore(db.BoltDB, db.DBOptions{Directory: dir}, genesis)
	require.NoError(t, err)
	defer bs.MustClose()

	ok, err := bs.IsBlackballed(key(5))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewGenericBlackballStore_NilProvider(t *testing.T) {
	_, err := NewGenericBlackballStore(nil, types.Hash{})
	assert.Error(t, err)
}
