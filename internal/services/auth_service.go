package services

import (
	"errors"

	"cherrybud/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadPassword = errors.New("incorrect password")

// AuthService is the shared-password admin gate. The configured password is
// hashed once at startup; the session row carries the admin flag afterwards.
type AuthService struct {
	Sessions *repos.SessionRepo
	hash     []byte
}

func NewAuthService(sessions *repos.SessionRepo, adminPassword string) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 12)
	if err != nil {
		return nil, err
	}
	return &AuthService{Sessions: sessions, hash: hash}, nil
}

func (s *AuthService) Login(sid, password string) error {
	if bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
		return ErrBadPassword
	}
	return s.Sessions.SetAdmin(sid, true)
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.SetAdmin(sid, false)
}

func (s *AuthService) IsAdmin(sid string) bool {
	ok, err := s.Sessions.IsAdmin(sid)
	return err == nil && ok
}
