package utils

import "testing"

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("password stored in plain text")
	}

	if !CheckPasswordHash("secret123", hash) {
		t.Fatalf("correct password does not verify")
	}
	if CheckPasswordHash("wrong-password", hash) {
		t.Fatalf("wrong password verifies")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatalf("two hashes of the same password must differ")
	}
}
