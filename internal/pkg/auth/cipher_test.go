package auth

import (
	"errors"
	"testing"
)

func TestXChaChaCipherRoundTrip(t *testing.T) {
	cipher, err := NewXChaChaCipher("session-secret")
	if err != nil {
		t.Fatalf("create cipher: %v", err)
	}

	sealed, err := cipher.Seal("upstream-token")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if sealed == "upstream-token" {
		t.Fatal("expected ciphertext to differ from plaintext")
	}

	opened, err := cipher.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened != "upstream-token" {
		t.Fatalf("unexpected plaintext: %q", opened)
	}
}

func TestXChaChaCipherNonceVariance(t *testing.T) {
	cipher, err := NewXChaChaCipher("session-secret")
	if err != nil {
		t.Fatalf("create cipher: %v", err)
	}
	first, _ := cipher.Seal("token")
	second, _ := cipher.Seal("token")
	if first == second {
		t.Fatal("expected distinct ciphertexts for repeated seals")
	}
}

func TestXChaChaCipherRejectsGarbage(t *testing.T) {
	cipher, err := NewXChaChaCipher("session-secret")
	if err != nil {
		t.Fatalf("create cipher: %v", err)
	}

	cases := []struct {
		name  string
		input string
	}{
		{"not base64", "%%%"},
		{"too short", "YWJj"},
		{"wrong key material", func() string {
			other, _ := NewXChaChaCipher("different-secret")
			sealed, _ := other.Seal("token")
			return sealed
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := cipher.Open(tc.input); !errors.Is(err, ErrCiphertext) {
				t.Fatalf("expected ErrCiphertext, got %v", err)
			}
		})
	}
}
