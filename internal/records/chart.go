package records

import (
	"strconv"
	"strings"
)

// ChartValue extracts the numeric token a chart plots for a vital value.
// Composite readings split on the first '/' and only the leading
// component counts, so "120/80" charts as 120. Returns false when no
// leading number can be parsed; callers render nothing in that case.
func ChartValue(value string) (float64, bool) {
	head, _, _ := strings.Cut(value, "/")
	head = strings.TrimSpace(head)

	end := 0
	for end < len(head) {
		c := head[end]
		if (c >= '0' && c <= '9') || c == '.' || (end == 0 && (c == '-' || c == '+')) {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseFloat(head[:end], 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
