// ABOUTME: Tests for the encryption codec.
// ABOUTME: Covers round-trips, wrong passwords, tampering, and envelope layout.

package crypto

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintexts := []string{"Hello world", "", "multi\nline\ncontent", "日本語のメモ"}

	for _, plain := range plaintexts {
		envelope, err := Encrypt(plain, "secret")
		if err != nil {
			t.Fatalf("encrypt %q: %v", plain, err)
		}

		got, err := Decrypt(envelope, "secret")
		if err != nil {
			t.Fatalf("decrypt %q: %v", plain, err)
		}
		if got != plain {
			t.Errorf("expected %q, got %q", plain, got)
		}
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	envelope, err := Encrypt("sensitive", "right")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	_, err = Decrypt(envelope, "wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestEncryptFreshSaltAndNonce(t *testing.T) {
	first, err := Encrypt("same content", "same password")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	second, err := Encrypt("same content", "same password")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	if first == second {
		t.Error("two encryptions of identical input must produce different envelopes")
	}
}

func TestDecryptTamperedEnvelope(t *testing.T) {
	envelope, err := Encrypt("content", "password")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(envelope)
	raw[len(raw)-1] ^= 0xff
	tampered := base64.StdEncoding.EncodeToString(raw)

	_, err = Decrypt(tampered, "password")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword for tampered data, got %v", err)
	}
}

func TestDecryptMalformedEnvelope(t *testing.T) {
	cases := []string{
		"not base64 at all!!!",
		base64.StdEncoding.EncodeToString([]byte("short")),
		"",
	}

	for _, c := range cases {
		if _, err := Decrypt(c, "password"); !errors.Is(err, ErrInvalidPassword) {
			t.Errorf("envelope %q: expected ErrInvalidPassword, got %v", c, err)
		}
	}
}

func TestEnvelopeLayout(t *testing.T) {
	envelope, err := Encrypt("layout check", "password")
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		t.Fatalf("envelope must be valid base64: %v", err)
	}

	// salt(16) + nonce(12) + at least a 16-byte GCM tag
	if len(raw) < saltLen+nonceLen+16 {
		t.Errorf("envelope too short: %d bytes", len(raw))
	}
}
