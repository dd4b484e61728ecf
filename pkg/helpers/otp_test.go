package helpers

import "testing"

func TestGenOTPCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := GenOTPCode(6)
		if err != nil {
			t.Fatalf("GenOTPCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("len(%q) = %d, want 6", code, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in code %q", code)
			}
		}
		seen[code] = true
	}
	// 20 draws from a million values colliding down to one code would mean
	// the generator is broken, not unlucky.
	if len(seen) < 2 {
		t.Errorf("20 generated codes yielded %d distinct values", len(seen))
	}
}

func TestHashAndCompareOTPCode(t *testing.T) {
	hash, err := HashOTPCode("429173")
	if err != nil {
		t.Fatalf("HashOTPCode: %v", err)
	}
	if hash == "429173" {
		t.Fatal("code stored in plaintext")
	}
	if !CompareOTPCode(hash, "429173") {
		t.Error("correct code rejected")
	}
	if CompareOTPCode(hash, "429174") {
		t.Error("wrong code accepted")
	}
	if CompareOTPCode(hash, "") {
		t.Error("empty code accepted")
	}
}

func TestGuardKeysAreDistinct(t *testing.T) {
	p := "+251911234567"
	keys := map[string]bool{
		KeyOTPCooldown(p): true,
		KeyOTPAttempts(p): true,
		KeyOTPLock(p):     true,
	}
	if len(keys) != 3 {
		t.Errorf("guard keys collide: %v", keys)
	}
}
