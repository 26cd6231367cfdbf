package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func newTestCipher(t *testing.T) *FieldCipher {
	t.Helper()
	c, err := NewFieldCipherFromSecret("test-secret", "feedback")
	if err != nil {
		t.Fatalf("NewFieldCipherFromSecret() unexpected error: %v", err)
	}
	return c
}

func TestEncryptDecrypt(t *testing.T) {
	c := newTestCipher(t)

	enc, err := c.Encrypt("visitor@example.com")
	if err != nil {
		t.Fatalf("Encrypt() unexpected error: %v", err)
	}
	if enc == "visitor@example.com" {
		t.Fatal("Encrypt() returned plaintext")
	}

	dec, err := c.Decrypt(enc)
	if err != nil {
		t.Fatalf("Decrypt() unexpected error: %v", err)
	}
	if dec != "visitor@example.com" {
		t.Errorf("Decrypt() = %q, want %q", dec, "visitor@example.com")
	}
}

func TestEncryptUsesFreshNonce(t *testing.T) {
	c := newTestCipher(t)
	a, _ := c.Encrypt("555123456")
	b, _ := c.Encrypt("555123456")
	if a == b {
		t.Error("Encrypt() produced identical ciphertexts for the same input")
	}
}

func TestEmptyValuesPassThrough(t *testing.T) {
	c := newTestCipher(t)
	if enc, err := c.Encrypt(""); err != nil || enc != "" {
		t.Errorf("Encrypt(\"\") = %q, %v", enc, err)
	}
	if dec, err := c.Decrypt(""); err != nil || dec != "" {
		t.Errorf("Decrypt(\"\") = %q, %v", dec, err)
	}
	if idx := c.BlindIndex(""); idx != "" {
		t.Errorf("BlindIndex(\"\") = %q", idx)
	}
}

func TestDecryptRejectsTampering(t *testing.T) {
	c := newTestCipher(t)
	if _, err := c.Decrypt("AAAA"); !errors.Is(err, ErrCiphertextShort) {
		t.Errorf("expected ErrCiphertextShort, got %v", err)
	}

	other, err := NewFieldCipherFromSecret("another-secret", "feedback")
	if err != nil {
		t.Fatal(err)
	}
	enc, _ := c.Encrypt("hello")
	if _, err := other.Decrypt(enc); err == nil {
		t.Error("Decrypt() with a different key should fail")
	}
}

func TestBlindIndexDeterministic(t *testing.T) {
	c := newTestCipher(t)
	if c.BlindIndex("a@example.com") != c.BlindIndex("a@example.com") {
		t.Error("BlindIndex() is not deterministic")
	}
	if c.BlindIndex("a@example.com") == c.BlindIndex("b@example.com") {
		t.Error("BlindIndex() collided for different inputs")
	}

	other, _ := NewFieldCipherFromSecret("test-secret", "other-purpose")
	if c.BlindIndex("a@example.com") == other.BlindIndex("a@example.com") {
		t.Error("purpose label should change derived keys")
	}
}

func TestNewFieldCipherKeyChecks(t *testing.T) {
	if _, err := NewFieldCipher([]byte("short"), bytes.Repeat([]byte{1}, 32)); !errors.Is(err, ErrKeySize) {
		t.Errorf("expected ErrKeySize, got %v", err)
	}
	if _, err := NewFieldCipherFromSecret("", "feedback"); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("expected ErrEmptySecret, got %v", err)
	}
}
