// Package expand grows a ranked hit list into its temporal neighbourhood.
// A single top-ranked message is often one fragment of a multi-message
// exchange; the adjacent messages are likely to hold the complete answer.
package expand

// Window emits, for each id in topIDs in order, every corpus position in
// [id-window, id+window] clamped to [0, corpusLen), skipping positions
// already emitted. First-emission order is preserved.
func Window(topIDs []int, corpusLen, window int) []int {
	if corpusLen <= 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(topIDs)*(2*window+1))
	out := make([]int, 0, len(topIDs)*(2*window+1))
	for _, id := range topIDs {
		lo := id - window
		if lo < 0 {
			lo = 0
		}
		hi := id + window
		if hi > corpusLen-1 {
			hi = corpusLen - 1
		}
		for j := lo; j <= hi; j++ {
			if _, dup := seen[j]; dup {
				continue
			}
			seen[j] = struct{}{}
			out = append(out, j)
		}
	}
	return out
}
