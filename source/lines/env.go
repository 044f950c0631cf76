package lines

import "strings"

// toKey maps OPTAB_SOURCE__MAX_LINE_BYTES to max_line_bytes.
func toKey(s, prefix string) string {
	return strings.ToLower(strings.TrimPrefix(s, prefix))
}
