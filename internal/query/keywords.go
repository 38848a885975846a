package query

import "sort"

// Keywords returns the most frequent stop-word-filtered tokens of the text,
// longest-standing first on frequency ties, up to limit entries. Used to
// derive secondary queries from an already-displayed article.
func Keywords(text string, limit int) []string {
	counts := map[string]int{}
	var order []string

	for _, token := range tokenize(text) {
		if len(token) < minTokenLength {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		if _, seen := counts[token]; !seen {
			order = append(order, token)
		}
		counts[token]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}
	return order
}
