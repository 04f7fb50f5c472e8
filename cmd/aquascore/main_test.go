package main

import "testing"

func TestRendererFor(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"json", false},
		{"yaml", true},
		{"", true},
	}

	for _, tc := range tests {
		t.Run(tc.format, func(t *testing.T) {
			r, err := rendererFor(tc.format)
			if tc.wantErr {
				if err == nil {
					t.Errorf("rendererFor(%q) expected error, got nil", tc.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("rendererFor(%q): %v", tc.format, err)
			}
			if r == nil {
				t.Errorf("rendererFor(%q) returned nil renderer", tc.format)
			}
		})
	}
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("AQUASCORE_TEST_VAR", "from-env")
	if got := envOrDefault("AQUASCORE_TEST_VAR", "fallback"); got != "from-env" {
		t.Errorf("envOrDefault = %q, want from-env", got)
	}
	if got := envOrDefault("AQUASCORE_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("envOrDefault = %q, want fallback", got)
	}
}
