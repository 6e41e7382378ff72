// Package mtf implements the Move-To-Front transform: a stateful
// byte-to-rank re-encoding against a 256-entry table that promotes each
// symbol to the front after it is used. The table is local to a single
// Encode or Decode call and is never persisted or shared between calls.
package mtf

// Encode maps each byte of input to its current rank (0-255) in a
// self-promoting table initialized to the identity permutation. The output
// is always the same length as the input.
func Encode(input []byte) ([]byte, error) {
	var table [256]byte
	for i := range table {
		table[i] = byte(i)
	}

	out := make([]byte, len(input))
	for idx, b := range input {
		k := 0
		for table[k] != b {
			k++
		}
		out[idx] = byte(k)
		promote(&table, k)
	}
	return out, nil
}

// Decode inverts Encode: each input byte is a rank, looked up in the same
// self-promoting table to recover the original byte.
func Decode(input []byte) ([]byte, error) {
	var table [256]byte
	for i := range table {
		table[i] = byte(i)
	}

	out := make([]byte, len(input))
	for idx, k := range input {
		b := table[k]
		out[idx] = b
		promote(&table, int(k))
	}
	return out, nil
}

// promote shifts table[0:k] right by one and sets table[0] to the value
// that was at table[k], i.e. it moves that value to the front.
func promote(table *[256]byte, k int) {
	v := table[k]
	for i := k; i > 0; i-- {
		table[i] = table[i-1]
	}
	table[0] = v
}
