package service

import "testing"

func TestAllowlistCodeVerifierDefaults(t *testing.T) {
	verifier := NewAllowlistCodeVerifier(nil)

	if !verifier.Verify(1, "1234") {
		t.Fatalf("default code 1234 should verify")
	}
	if !verifier.Verify(1, "bonus") {
		t.Fatalf("codes are case-insensitive")
	}
	if !verifier.Verify(1, "  BONUS  ") {
		t.Fatalf("codes are trimmed")
	}
	if verifier.Verify(1, "0000") {
		t.Fatalf("unknown code should not verify")
	}
	if verifier.Verify(1, "") {
		t.Fatalf("empty code should not verify")
	}
}

func TestAllowlistCodeVerifierCustomCodes(t *testing.T) {
	verifier := NewAllowlistCodeVerifier([]string{"table-7", "  "})

	if !verifier.Verify(1, "TABLE-7") {
		t.Fatalf("configured code should verify")
	}
	if verifier.Verify(1, "1234") {
		t.Fatalf("defaults should not apply when codes are configured")
	}
	if verifier.Verify(1, "") {
		t.Fatalf("blank configured entries are dropped")
	}
}
