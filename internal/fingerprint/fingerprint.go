// Package fingerprint derives the 64-bit deduplication key for an input
// line, per the column-selection policy configured by keyspec.Spec.
package fingerprint

import "github.com/GriffinCanCode/cache/internal/keyspec"

// Seed is the seed passed to MurmurHash64A. Hashing native-width machine
// words with no explicit seed defaults to 0; kept here for bit-exact
// reproducibility of that convention.
const Seed = 0

// Compute derives the fingerprint of line under the given key spec.
//
// If spec selects the whole line (no positive column given) the full line
// is hashed. Otherwise the line is split on spec.Separator; if it does not
// have enough fields to satisfy every requested column, the policy falls
// back to hashing the whole line (see keyspec.Spec.Select for the exact
// boundary). Otherwise the requested columns are concatenated, in order,
// with no delimiter, and that byte sequence is hashed.
func Compute(line []byte, spec keyspec.Spec) uint64 {
	if key, ok := spec.Select(line); ok {
		return murmurHash64A(key, Seed)
	}
	return murmurHash64A(line, Seed)
}
