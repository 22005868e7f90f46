package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"coachtrack/internal/model"
)

var ErrBadCredentials = errors.New("invalid username or password")

const RoleSuperadmin = "superadmin"

// ProfileReader is the slice of the backend the auth flow needs.
type ProfileReader interface {
	ProfileByLogin(ctx context.Context, login string) (*model.Profile, error)
	ProfileByID(ctx context.Context, id string) (*model.Profile, error)
}

type AuthService struct {
	profiles    ProfileReader
	superadmins map[string]bool
}

func NewAuthService(profiles ProfileReader, superadminEmails []string) *AuthService {
	allow := make(map[string]bool, len(superadminEmails))
	for _, e := range superadminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			allow[e] = true
		}
	}
	return &AuthService{profiles: profiles, superadmins: allow}
}

func (s *AuthService) Login(ctx context.Context, login, password string) (*model.Profile, error) {
	p, err := s.profiles.ProfileByLogin(ctx, login)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return p, nil
}

func (s *AuthService) Profile(ctx context.Context, id string) (*model.Profile, error) {
	p, err := s.profiles.ProfileByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// Role resolves the effective role: the configured superadmin email
// allowlist overrides whatever the profile says.
func (s *AuthService) Role(p *model.Profile) string {
	if s.superadmins[strings.ToLower(p.Email)] {
		return RoleSuperadmin
	}
	return p.Role
}
