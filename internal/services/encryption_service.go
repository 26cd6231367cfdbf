package services

import (
	"strings"

	"foodlog/internal/crypto"
	"foodlog/internal/models"
)

// EncryptionService wraps the field cipher with feedback-specific methods.
type EncryptionService struct {
	cipher *crypto.FieldCipher
}

// NewEncryptionService derives the feedback keys from the application secret.
func NewEncryptionService(secret string) (*EncryptionService, error) {
	c, err := crypto.NewFieldCipherFromSecret(secret, "foodlog feedback v1")
	if err != nil {
		return nil, err
	}
	return &EncryptionService{cipher: c}, nil
}

// EncryptFeedback encrypts contact fields before storing in DB
func (s *EncryptionService) EncryptFeedback(fb *models.Feedback) error {
	email, index, err := s.cipher.EncryptWithBlindIndex(fb.Email)
	if err != nil {
		return err
	}
	phone, err := s.cipher.Encrypt(fb.Phone)
	if err != nil {
		return err
	}
	fb.Email, fb.EmailIndex, fb.Phone = email, index, phone
	return nil
}

// DecryptFeedback decrypts contact fields after retrieving from DB
func (s *EncryptionService) DecryptFeedback(fb *models.Feedback) error {
	email, err := s.cipher.Decrypt(fb.Email)
	if err != nil {
		return err
	}
	phone, err := s.cipher.Decrypt(fb.Phone)
	if err != nil {
		return err
	}
	fb.Email, fb.Phone = email, phone
	return nil
}

// EmailIndex computes the blind index used to find feedback by sender.
func (s *EncryptionService) EmailIndex(email string) string {
	return s.cipher.BlindIndex(strings.ToLower(strings.TrimSpace(email)))
}
