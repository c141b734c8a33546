package transform

import "strings"

// pickFirst returns the first non-empty trimmed candidate, or "". This is
// the alias-priority resolver: callers pass candidates in priority order.
func pickFirst(candidates ...string) string {
	for _, c := range candidates {
		if s := strings.TrimSpace(c); s != "" {
			return s
		}
	}
	return ""
}

// firstNonEmptyList returns the first candidate list that has entries.
func firstNonEmptyList(candidates ...[]string) []string {
	for _, c := range candidates {
		if len(c) > 0 {
			return c
		}
	}
	return nil
}

// uniqueInOrder dedups exact strings preserving first-seen order.
func uniqueInOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
