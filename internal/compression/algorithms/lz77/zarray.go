package lz77

// ZArray computes the Z-array of s: z[i] is the length of the longest common
// prefix of s and s[i:], with z[0] = len(s). The result reuses z when it has
// enough capacity.
func ZArray(s []byte, z []int) []int {
	n := len(s)
	if cap(z) < n {
		z = make([]int, n)
	}
	z = z[:n]
	if n == 0 {
		return z
	}
	z[0] = n
	// [left, right) is the rightmost window known to match a prefix of s.
	left, right := 0, 0
	for i := 1; i < n; i++ {
		k := 0
		if i < right {
			k = min(right-i, z[i-left])
		}
		for i+k < n && s[k] == s[i+k] {
			k++
		}
		z[i] = k
		if i+k > right {
			left, right = i, i+k
		}
	}
	return z
}
