package rng

// HashString folds s into a seed using the classic 31-multiplier rolling hash
// over code points on wrapping 32-bit signed arithmetic, returning the
// absolute value widened to 64 bits.
func HashString(s string) uint64 {
	var hash int32
	for _, ch := range s {
		hash = (hash << 5) - hash + int32(ch)
	}

	if hash < 0 {
		return uint64(-int64(hash))
	}
	return uint64(hash)
}

// HashDeterministic combines a concept with a language seed. The arithmetic
// wraps modulo 2^64.
func HashDeterministic(concept string, languageSeed uint64) uint64 {
	return HashString(concept)*31 + languageSeed
}
