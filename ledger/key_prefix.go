package ledger

import "encoding/binary"

// Declare database key prefix for ledger objects
const (
	PrefixTx       = "tx:"
	PrefixTxMeta   = "tx_meta:"
	PrefixOutput   = "out:"
	PrefixOutCount = "out_count:"

	MetaKeyGenesis = "meta:genesis"
	MetaKeyNextSeq = "meta:next_seq"
)

func be64(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func txKey(seq uint64) []byte {
	return append([]byte(PrefixTx), be64(seq)...)
}

func txMetaKey(seq uint64) []byte {
	return append([]byte(PrefixTxMeta), be64(seq)...)
}

func outputKey(amount, index uint64) []byte {
	k := append([]byte(PrefixOutput), be64(amount)...)
	return append(k, be64(index)...)
}

func outCountKey(amount uint64) []byte {
	return append([]byte(PrefixOutCount), be64(amount)...)
}

func seqFromTxKey(key []byte) (uint64, bool) {
	if len(key) != len(PrefixTx)+8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(key[len(PrefixTx):]), true
}
