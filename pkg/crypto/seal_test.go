package crypto

import (
	"strings"
	"testing"
)

// Requirement: Seal then Open round-trips the plaintext, including with a
// second sealer built from the same secret.
func TestArgon2Sealer_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "json envelope", plaintext: `{"accessToken":"T1","refreshToken":"R1"}`},
		{name: "empty plaintext", plaintext: ""},
		{name: "binary-ish content", plaintext: "\x00\x01\xffdata"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sealer := fastSealer("device-secret")

			sealed, err := sealer.Seal([]byte(test.plaintext))
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}
			if !IsSealed([]byte(sealed)) {
				t.Errorf("IsSealed() = false for sealed output %q", sealed)
			}

			// A fresh instance with the same secret must be able to open it.
			opened, err := fastSealer("device-secret").Open(sealed)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if string(opened) != test.plaintext {
				t.Errorf("Open() = %q, want %q", opened, test.plaintext)
			}
		})
	}
}

// Requirement: a wrong secret, tampered ciphertext, or malformed envelope all
// fail to open.
func TestArgon2Sealer_Open_Failures(t *testing.T) {
	sealer := fastSealer("device-secret")
	sealed, err := sealer.Seal([]byte(`{"accessToken":"T1"}`))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	tests := []struct {
		name   string
		secret string
		input  string
	}{
		{
			name:   "wrong secret",
			secret: "other-secret",
			input:  sealed,
		},
		{
			name:   "tampered ciphertext",
			secret: "device-secret",
			input:  sealed[:len(sealed)-2] + "zz",
		},
		{
			name:   "not an envelope",
			secret: "device-secret",
			input:  `{"accessToken":"T1"}`,
		},
		{
			name:   "unsupported version",
			secret: "device-secret",
			input:  strings.Replace(sealed, "v=1", "v=9", 1),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := fastSealer(test.secret).Open(test.input); err == nil {
				t.Error("Open() should fail")
			}
		})
	}
}

func TestIsSealed(t *testing.T) {
	if IsSealed([]byte(`{"accessToken":"T1"}`)) {
		t.Error("IsSealed() = true for plain JSON")
	}
	if !IsSealed([]byte("  $sealed$v=1$a$b$c")) {
		t.Error("IsSealed() = false for sealed envelope with leading space")
	}
}

// fastSealer lowers the KDF cost so the suite stays quick.
func fastSealer(secret string) *Argon2Sealer {
	s := NewArgon2Sealer(secret)
	s.Memory = 8 * 1024
	s.Iterations = 1
	return s
}
