package catalog

// Shuffle returns a Fisher–Yates shuffled copy of items; the input is left
// untouched.
func Shuffle[T any](items []T, rnd Rand) []T {
	rnd = orDefault(rnd)

	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
