package utils

import (
	"regexp"
	"testing"
)

func TestGenerateResetToken(t *testing.T) {
	t.Parallel()

	token, digest, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}

	if len(token) != 40 {
		t.Fatalf("token length = %d, want 40 hex chars", len(token))
	}
	if got := HashResetToken(token); got != digest {
		t.Fatalf("digest mismatch: %s vs %s", got, digest)
	}

	// Two tokens must not collide.
	token2, _, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken error: %v", err)
	}
	if token == token2 {
		t.Fatal("generated identical tokens")
	}
}

func TestHashResetToken_Deterministic(t *testing.T) {
	t.Parallel()

	if HashResetToken("abc") != HashResetToken("abc") {
		t.Fatal("digest not deterministic")
	}
	if HashResetToken("abc") == HashResetToken("abd") {
		t.Fatal("different tokens hashed equal")
	}
}

func TestGenerateVerificationCode(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateVerificationCode()
		if err != nil {
			t.Fatalf("GenerateVerificationCode error: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("code %q is not 6 digits", code)
		}
	}
}
