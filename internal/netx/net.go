// Package netx contains small networking helpers shared by the API client.
package netx

import "strings"

// CandidateBases builds the ordered list of base URLs the API client tries
// in turn: the explicitly configured external base (if any), the page
// origin itself, and the origin suffixed with the API prefix. Trailing
// slashes are trimmed and duplicates removed while preserving order.
func CandidateBases(external, origin, apiPrefix string) []string {
	candidates := make([]string, 0, 3)

	add := func(base string) {
		base = strings.TrimRight(strings.TrimSpace(base), "/")
		if base == "" {
			return
		}
		for _, c := range candidates {
			if c == base {
				return
			}
		}
		candidates = append(candidates, base)
	}

	add(external)
	add(origin)
	if origin != "" && apiPrefix != "" {
		prefix := "/" + strings.Trim(apiPrefix, "/")
		add(strings.TrimRight(origin, "/") + prefix)
	}

	return candidates
}
