package services

import (
	"context"
	"errors"

	"prodx/internal/domain"
	"prodx/internal/repos"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Admins *repos.AdminRepo
}

func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.Admin, error) {
	a, err := s.Admins.ByEmail(ctx, email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Admins.BindSession(ctx, sid, a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	return s.Admins.UnbindSession(ctx, sid)
}

func (s *AuthService) CurrentAdmin(ctx context.Context, sid string) (*domain.Admin, error) {
	return s.Admins.SessionAdmin(ctx, sid)
}
