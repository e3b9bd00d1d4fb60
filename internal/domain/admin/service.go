package admin

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	jwtsvc "leaddesk/internal/pkg/jwt"
)

const RoleAdmin = "admin"

// Service authenticates the single staff account configured through the
// environment and issues admin tokens.
type Service struct {
	email        string
	passwordHash []byte
	jwt          *jwtsvc.Service
}

func NewService(email, passwordHash string, jwt *jwtsvc.Service) *Service {
	return &Service{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: []byte(passwordHash),
		jwt:          jwt,
	}
}

// Enabled reports whether an admin account is configured.
func (s *Service) Enabled() bool {
	return s.email != "" && len(s.passwordHash) > 0
}

// Login checks the credentials and returns a signed token and its expiry.
func (s *Service) Login(_ context.Context, email, password string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrAdminDisabled
	}

	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) == 1
	// The hash is checked even for a wrong email so both cases take as long.
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !emailOK || passErr != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(s.email, RoleAdmin)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, time.Now().Add(s.jwt.TTL()), nil
}

// HashPassword returns the bcrypt hash stored in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
