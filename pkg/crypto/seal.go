package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealer encrypts and decrypts the persisted session envelope with a key
// derived from a device secret.
type Sealer interface {
	Seal(plaintext []byte) (string, error)
	Open(sealed string) ([]byte, error)
}

var ErrSealFormat = errors.New("invalid sealed envelope format")

// Ensure Argon2Sealer implements Sealer
var _ Sealer = (*Argon2Sealer)(nil)

// Argon2Sealer derives a ChaCha20-Poly1305 key from the secret with argon2id.
// The salt and nonce travel with the ciphertext, so any instance built from
// the same secret can open an envelope sealed by another.
type Argon2Sealer struct {
	secret []byte

	Memory      uint32 // Memory cost in KiB
	Iterations  uint32 // Number of iterations (time cost)
	Parallelism uint8  // Number of parallel threads
	SaltLength  uint32 // Length of random salt
}

// NewArgon2Sealer creates a sealer with OWASP-recommended KDF parameters.
//
// @ref https://cheatsheetseries.owasp.org/cheatsheets/Password_Storage_Cheat_Sheet.html
func NewArgon2Sealer(secret string) *Argon2Sealer {
	return &Argon2Sealer{
		secret:      []byte(secret),
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
	}
}

func (s *Argon2Sealer) deriveKey(salt []byte) []byte {
	return argon2.IDKey(s.secret, salt, s.Iterations, s.Memory, s.Parallelism, chacha20poly1305.KeySize)
}

// Seal encrypts plaintext and returns a self-describing envelope string:
//
//	$sealed$v=1$<salt>$<nonce>$<ciphertext>
func (s *Argon2Sealer) Seal(plaintext []byte) (string, error) {
	salt := make([]byte, s.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := chacha20poly1305.New(s.deriveKey(salt))
	if err != nil {
		return "", fmt.Errorf("failed to build cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	return fmt.Sprintf("$sealed$v=1$%s$%s$%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(nonce),
		base64.RawStdEncoding.EncodeToString(ciphertext)), nil
}

// Open decrypts an envelope produced by Seal. Tampered or truncated input
// fails; the caller treats that the same as a corrupt store.
func (s *Argon2Sealer) Open(sealed string) ([]byte, error) {
	parts := strings.Split(sealed, "$")
	if len(parts) != 6 || parts[1] != "sealed" {
		return nil, ErrSealFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != 1 {
		return nil, ErrSealFormat
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("invalid salt encoding: %w", err)
	}
	nonce, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("invalid nonce encoding: %w", err)
	}
	ciphertext, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("invalid ciphertext encoding: %w", err)
	}

	aead, err := chacha20poly1305.New(s.deriveKey(salt))
	if err != nil {
		return nil, fmt.Errorf("failed to build cipher: %w", err)
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrSealFormat
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open envelope: %w", err)
	}
	return plaintext, nil
}

// IsSealed reports whether data looks like a sealed envelope rather than a
// plain JSON document.
func IsSealed(data []byte) bool {
	return strings.HasPrefix(strings.TrimSpace(string(data)), "$sealed$")
}
