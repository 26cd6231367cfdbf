package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

var (
	ErrKeySize         = errors.New("field keys must be 32 bytes")
	ErrEmptySecret     = errors.New("secret is empty")
	ErrCiphertextShort = errors.New("ciphertext too short")
)

// FieldCipher encrypts individual column values and computes blind indexes
// so encrypted columns can still be matched by equality.
type FieldCipher struct {
	aead     cipher.AEAD
	indexKey []byte
}

// NewFieldCipher builds a cipher from a 32 byte AES-256 key and a separate
// 32 byte HMAC-SHA256 key for blind indexing.
func NewFieldCipher(encryptionKey, indexKey []byte) (*FieldCipher, error) {
	if len(encryptionKey) != keySize || len(indexKey) != keySize {
		return nil, ErrKeySize
	}
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &FieldCipher{aead: gcm, indexKey: indexKey}, nil
}

// NewFieldCipherFromSecret derives both keys from the application secret
// with HKDF-SHA256, using purpose as the info label.
func NewFieldCipherFromSecret(secret, purpose string) (*FieldCipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	encKey := make([]byte, keySize)
	idxKey := make([]byte, keySize)
	if _, err := io.ReadFull(kdf, encKey); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(kdf, idxKey); err != nil {
		return nil, err
	}
	return NewFieldCipher(encKey, idxKey)
}

// Encrypt seals plaintext with AES-256-GCM.
// Returns base64-encoded ciphertext with nonce prepended.
func (c *FieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a value produced by Encrypt.
func (c *FieldCipher) Decrypt(ciphertext string) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return "", ErrCiphertextShort
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// BlindIndex is a deterministic HMAC-SHA256 of plaintext.
func (c *FieldCipher) BlindIndex(plaintext string) string {
	if plaintext == "" {
		return ""
	}

	h := hmac.New(sha256.New, c.indexKey)
	h.Write([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// EncryptWithBlindIndex encrypts data and returns both encrypted value and blind index
func (c *FieldCipher) EncryptWithBlindIndex(plaintext string) (encrypted, index string, err error) {
	encrypted, err = c.Encrypt(plaintext)
	if err != nil {
		return "", "", err
	}
	return encrypted, c.BlindIndex(plaintext), nil
}
