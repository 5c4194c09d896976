package netx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCandidateBases(t *testing.T) {
	tests := []struct {
		name     string
		external string
		origin   string
		prefix   string
		want     []string
	}{
		{
			name:     "external first then origin then prefixed",
			external: "https://api.prizo.app",
			origin:   "https://prizo.app",
			prefix:   "api",
			want:     []string{"https://api.prizo.app", "https://prizo.app", "https://prizo.app/api"},
		},
		{
			name:   "no external",
			origin: "http://localhost:8080",
			prefix: "/api",
			want:   []string{"http://localhost:8080", "http://localhost:8080/api"},
		},
		{
			name:     "duplicate external and origin collapse",
			external: "https://prizo.app/",
			origin:   "https://prizo.app",
			prefix:   "api",
			want:     []string{"https://prizo.app", "https://prizo.app/api"},
		},
		{
			name:     "empty origin keeps external only",
			external: "https://api.prizo.app/",
			prefix:   "api",
			want:     []string{"https://api.prizo.app"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CandidateBases(tt.external, tt.origin, tt.prefix)
			require.Equal(t, tt.want, got)
		})
	}
}
