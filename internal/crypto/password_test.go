package crypto

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("longenough1")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == "longenough1" {
		t.Fatalf("expected hash to differ from plaintext")
	}
	if err := CheckPassword(hash, "longenough1"); err != nil {
		t.Fatalf("expected password to match")
	}
	if err := CheckPassword(hash, "wrong"); err == nil {
		t.Fatalf("expected password mismatch")
	}
}
