package instrumentation

import "testing"

func TestNormalizeVerb(t *testing.T) {
	tests := []struct {
		verb  string
		known bool
		want  string
	}{
		{"get", true, "get"},
		{"DELETE", true, "delete"},
		{"frobnicate", false, "other"},
		{"", false, "none"},
		{"", true, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.verb, func(t *testing.T) {
			if got := NormalizeVerb(tt.verb, tt.known); got != tt.want {
				t.Errorf("NormalizeVerb(%q, %v) = %q, want %q", tt.verb, tt.known, got, tt.want)
			}
		})
	}
}

func TestNamespaceClass(t *testing.T) {
	tests := []struct {
		namespace string
		want      string
	}{
		{"", "none"},
		{"default", "default"},
		{"kube-system", "system"},
		{"kube-public", "system"},
		{"flux-system", "system"},
		{"team-a", "user"},
		{"production", "user"},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			if got := NamespaceClass(tt.namespace); got != tt.want {
				t.Errorf("NamespaceClass(%q) = %q, want %q", tt.namespace, got, tt.want)
			}
		})
	}
}
