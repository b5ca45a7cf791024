package internal

// ParentChain follows parent links from last until a negative index and
// returns the visited indices ordered root first. limit caps the walk so a
// corrupted chain cannot loop forever.
func ParentChain(last int32, limit int, parent func(int32) int32) []int32 {
	chain := make([]int32, 0, 16)
	for current := last; current >= 0 && len(chain) < limit; current = parent(current) {
		chain = append(chain, current)
	}
	Reverse(chain)
	return chain
}

// Reverse reverses s in place.
func Reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
