package auth

import (
	"bytes"
	"testing"
)

func TestGenerateSalt_UniqueAndSized(t *testing.T) {
	s1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	s2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	if len(s1) != saltLen || len(s2) != saltLen {
		t.Fatalf("unexpected salt length: %d, %d", len(s1), len(s2))
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("two salts are identical")
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef0123456789abcdef")

	d1 := HashPassword("hunter2", salt)
	d2 := HashPassword("hunter2", salt)
	if !bytes.Equal(d1, d2) {
		t.Fatalf("same password and salt produced different digests")
	}
	if len(d1) != digestLen {
		t.Fatalf("unexpected digest length: %d", len(d1))
	}
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	s1 := []byte("0123456789abcdef0123456789abcdef")
	s2 := []byte("fedcba9876543210fedcba9876543210")

	if bytes.Equal(HashPassword("hunter2", s1), HashPassword("hunter2", s2)) {
		t.Fatalf("different salts produced the same digest")
	}
}

func TestVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}
	digest := HashPassword("s3cret", salt)

	if !VerifyPassword("s3cret", salt, digest) {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword("s3cret!", salt, digest) {
		t.Fatalf("wrong password accepted")
	}
	if VerifyPassword("", salt, digest) {
		t.Fatalf("empty password accepted against non-empty digest")
	}
}

func TestHashPassword_EmptyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}

	// The hasher itself accepts empty passwords; any policy rejection
	// belongs to the signup flow.
	digest := HashPassword("", salt)
	if !VerifyPassword("", salt, digest) {
		t.Fatalf("empty password round-trip failed")
	}
}
