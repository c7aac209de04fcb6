package common

import "testing"

func TestCommitHash(t *testing.T) {
	h := CommitHash()
	if h == "" || len(h) > 8 && h != "unknown" {
		t.Fatalf("unexpected commit hash %q", h)
	}
}
