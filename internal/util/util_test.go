package util

import (
	"bytes"
	"testing"
)

func newTestKey(t *testing.T) []byte {
	t.Helper()
	key, err := RandomBytes(AESKeySize)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	return key
}

func TestAES(t *testing.T) {
	key := newTestKey(t)
	plainText := []byte("hello world")
	aad := []byte("context")

	t.Run("EncryptDecryptWithAAD", func(t *testing.T) {
		cipherText, err := EncryptAESWithAAD(plainText, key, aad)
		if err != nil {
			t.Fatalf("EncryptAESWithAAD failed: %v", err)
		}
		if len(cipherText) != GCMNonceSize+len(plainText)+GCMTagSize {
			t.Errorf("unexpected ciphertext length %d", len(cipherText))
		}

		decrypted, err := DecryptAESWithAAD(cipherText, key, aad)
		if err != nil {
			t.Fatalf("DecryptAESWithAAD failed: %v", err)
		}

		if !bytes.Equal(plainText, decrypted) {
			t.Errorf("expected %s, got %s", plainText, decrypted)
		}
	})

	t.Run("TamperAAD", func(t *testing.T) {
		cipherText, _ := EncryptAESWithAAD(plainText, key, aad)
		_, err := DecryptAESWithAAD(cipherText, key, []byte("wrong context"))
		if err == nil {
			t.Error("expected error with wrong AAD, got nil")
		}
	})

	t.Run("TamperCipherText", func(t *testing.T) {
		cipherText, _ := EncryptAESWithAAD(plainText, key, aad)
		cipherText[len(cipherText)-1] ^= 0xFF
		_, err := DecryptAESWithAAD(cipherText, key, aad)
		if err == nil {
			t.Error("expected error with tampered ciphertext, got nil")
		}
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := DecryptAESWithAAD(make([]byte, GCMNonceSize), key, aad)
		if err == nil {
			t.Error("expected error with truncated ciphertext, got nil")
		}
	})

	t.Run("RejectBadKeySize", func(t *testing.T) {
		_, err := EncryptAESWithAAD(plainText, []byte("too short"), aad)
		if err == nil {
			t.Error("expected error with wrong key size, got nil")
		}
	})
}

func TestPBKDF2(t *testing.T) {
	params := DefaultPBKDF2Params()
	password := []byte("correct horse battery staple")
	salt := []byte("0123456789abcdef")

	key1, err := DerivePBKDF2Key(password, salt, params)
	if err != nil {
		t.Fatalf("DerivePBKDF2Key failed: %v", err)
	}
	if len(key1) != 32 {
		t.Errorf("expected key length 32, got %d", len(key1))
	}

	key2, _ := DerivePBKDF2Key(password, salt, params)
	if !bytes.Equal(key1, key2) {
		t.Error("PBKDF2 should be deterministic")
	}

	key3, _ := DerivePBKDF2Key(password, []byte("fedcba9876543210"), params)
	if bytes.Equal(key1, key3) {
		t.Error("PBKDF2 should produce different output with a different salt")
	}

	t.Run("RejectsBadParams", func(t *testing.T) {
		if _, err := DerivePBKDF2Key(password, salt, PBKDF2Params{Iterations: 0, KeyLen: 32}); err == nil {
			t.Error("expected error for zero iterations")
		}
		if _, err := DerivePBKDF2Key(password, salt, PBKDF2Params{Iterations: 1, KeyLen: 16}); err == nil {
			t.Error("expected error for 16-byte key")
		}
	})
}

func TestDefaultPBKDF2Params(t *testing.T) {
	p := DefaultPBKDF2Params()
	if p.Iterations != 390000 {
		t.Errorf("default Iterations=%d, want 390000", p.Iterations)
	}
	if p.KeyLen != 32 {
		t.Errorf("default KeyLen=%d, want 32", p.KeyLen)
	}
}

func TestBytes(t *testing.T) {
	a := []byte{0x01, 0x02, 0x03}

	copied := CopyBytes(a)
	if !bytes.Equal(copied, a) {
		t.Error("CopyBytes failed")
	}
	copied[0] = 0xFF
	if a[0] == 0xFF {
		t.Error("CopyBytes should return a new slice")
	}
	if CopyBytes(nil) != nil {
		t.Error("CopyBytes(nil) should return nil")
	}

	WipeBytes(copied)
	if !bytes.Equal(copied, []byte{0, 0, 0}) {
		t.Errorf("WipeBytes left %v", copied)
	}
}

func TestEncoding(t *testing.T) {
	b := []byte{0x00, 0xFF, 0x10, 0x3A}
	encoded := Base64Encode(b)
	decoded, err := Base64Decode(encoded)
	if err != nil {
		t.Fatalf("Base64Decode failed: %v", err)
	}
	if !bytes.Equal(decoded, b) {
		t.Errorf("expected %v, got %v", b, decoded)
	}

	if _, err := Base64Decode("not base64!"); err == nil {
		t.Error("expected error for invalid base64")
	}

	normalized := Normalize("caf\u00e9")
	if normalized != "cafe\u0301" {
		t.Errorf("Normalize failed, got %q", normalized)
	}
}

func TestRandom(t *testing.T) {
	t.Run("RandomBytes", func(t *testing.T) {
		b1, err := RandomBytes(32)
		if err != nil {
			t.Fatalf("RandomBytes failed: %v", err)
		}
		b2, err := RandomBytes(32)
		if err != nil {
			t.Fatalf("RandomBytes failed: %v", err)
		}
		if len(b1) != 32 {
			t.Errorf("expected 32 bytes, got %d", len(b1))
		}
		if bytes.Equal(b1, b2) {
			t.Error("RandomBytes should produce different outputs")
		}
	})

	t.Run("RandomString", func(t *testing.T) {
		alphabet := []rune("abc")
		s, err := RandomString(50, alphabet)
		if err != nil {
			t.Fatalf("RandomString failed: %v", err)
		}
		if len(s) != 50 {
			t.Errorf("expected length 50, got %d", len(s))
		}
		for _, r := range s {
			if r != 'a' && r != 'b' && r != 'c' {
				t.Fatalf("unexpected rune %q", r)
			}
		}
		if _, err := RandomString(5, nil); err == nil {
			t.Error("expected error for empty alphabet")
		}
	})

	t.Run("RandomIntn", func(t *testing.T) {
		max := 100
		for i := 0; i < 100; i++ {
			n, err := RandomIntn(max)
			if err != nil {
				t.Fatalf("RandomIntn failed: %v", err)
			}
			if n < 0 || n >= max {
				t.Errorf("RandomIntn(%d) returned %d out of range", max, n)
			}
		}
		if _, err := RandomIntn(0); err == nil {
			t.Error("expected error for zero bound")
		}
	})
}
