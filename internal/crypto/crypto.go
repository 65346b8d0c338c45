package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Encrypted notes are plain text files whose whole content is replaced by a
// marker prefix and a base64 payload. New notes use the v2 format
// (PBKDF2-derived key, AES-GCM, per-note salt); the legacy format is the
// cycling-XOR cipher the original notes were written with and is still
// readable so old vaults keep working.
const (
	Prefix       = "ENCRYPTEDv2:"
	LegacyPrefix = "ENCRYPTED:"

	saltSize   = 32
	keySize    = 32
	iterations = 100000
)

var (
	ErrWrongPassword = errors.New("crypto: wrong password or corrupted note")
	ErrNotEncrypted  = errors.New("crypto: content is not encrypted")
	ErrEmptyPassword = errors.New("crypto: password must not be empty")
)

// IsEncrypted reports whether content carries either encryption marker.
func IsEncrypted(content string) bool {
	return strings.HasPrefix(content, Prefix) || strings.HasPrefix(content, LegacyPrefix)
}

// Encrypt seals plaintext with a key derived from password and returns the
// full marked note content: ENCRYPTEDv2:<base64(salt || nonce || ciphertext)>.
func Encrypt(plaintext, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	payload := append(append(salt, nonce...), sealed...)
	return Prefix + base64.StdEncoding.EncodeToString(payload), nil
}

// Decrypt reverses Encrypt. Legacy ENCRYPTED: payloads are decrypted with
// the XOR cipher; everything else must carry the v2 marker. A wrong password
// yields ErrWrongPassword, never a panic.
func Decrypt(content, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	if strings.HasPrefix(content, LegacyPrefix) {
		return decryptLegacy(strings.TrimPrefix(content, LegacyPrefix), password)
	}
	if !strings.HasPrefix(content, Prefix) {
		return "", ErrNotEncrypted
	}

	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(content, Prefix))
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	if len(payload) < saltSize {
		return "", ErrWrongPassword
	}
	salt, rest := payload[:saltSize], payload[saltSize:]

	gcm, err := newGCM(password, salt)
	if err != nil {
		return "", err
	}
	if len(rest) < gcm.NonceSize() {
		return "", ErrWrongPassword
	}
	nonce, sealed := rest[:gcm.NonceSize()], rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrWrongPassword
	}
	return string(plaintext), nil
}

// EncryptLegacy produces the original ENCRYPTED:<base64> format: plaintext
// bytes XORed with the password bytes cycled. Obfuscation only; kept for
// round-trip compatibility with old vaults, never used for new writes.
func EncryptLegacy(plaintext, password string) string {
	return LegacyPrefix + base64.StdEncoding.EncodeToString(xorCycle([]byte(plaintext), []byte(password)))
}

func decryptLegacy(encoded, password string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	plain := xorCycle(raw, []byte(password))
	// The legacy format has no authentication; this heuristic is all the
	// original had to tell a wrong password from a corrupted note.
	if len(plain) == 0 || strings.ContainsRune(string(plain), '\x00') {
		return "", ErrWrongPassword
	}
	return string(plain), nil
}

func xorCycle(data, key []byte) []byte {
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ key[i%len(key)]
	}
	return out
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, iterations, keySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return gcm, nil
}
