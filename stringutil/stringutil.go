package stringutil

// ShortHashLength is the length of hashes shortened for debug logs.
const ShortHashLength = 16

// ShortenHash keeps the head and tail of a hex hash, so per-transaction debug
// lines stay readable.
func ShortenHash(hash string) string {
	if len(hash) <= ShortHashLength {
		return hash
	}
	half := ShortHashLength / 2
	return hash[:half] + ".." + hash[len(hash)-half:]
}
