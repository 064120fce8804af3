package game

import "gonum.org/v1/gonum/stat/combin"

// Binomial returns C(n, k) in int64. Out-of-range arguments (k < 0 or
// k > n) return 0 rather than panicking like combin.Binomial, so callers
// can probe impossible configurations.
func Binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	return int64(combin.Binomial(n, k))
}

// Combinations enumerates every k-subset of nums in lexicographic index
// order. Each subset is a fresh slice; nums is not modified. Returns nil
// for k < 0 or k > len(nums) and a single empty subset for k == 0.
func Combinations(nums []int, k int) [][]int {
	n := len(nums)
	if k < 0 || k > n {
		return nil
	}
	if k == 0 {
		return [][]int{{}}
	}
	indexCombos := combin.Combinations(n, k)
	result := make([][]int, len(indexCombos))
	for i, idx := range indexCombos {
		subset := make([]int, k)
		for j, p := range idx {
			subset[j] = nums[p]
		}
		result[i] = subset
	}
	return result
}
