package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid password")

// Service validates the single admin credential. The configured password is
// hashed once at startup so login comparisons go through bcrypt.
type Service struct {
	passwordHash []byte
}

func NewService(adminPassword string) (*Service, error) {
	if adminPassword == "" {
		return nil, errors.New("admin password is not configured")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Service{passwordHash: hash}, nil
}

// Login checks the password and mints a session token.
func (s *Service) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return IssueToken()
}
