package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/njprem/MovieShelf_BackEnd/internal/domain"
	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

var ErrInvalidToken = errors.New("invalid or expired profile token")

type ProfileService struct {
	jwt *util.JWTManager
}

func NewProfileService(jwt *util.JWTManager) *ProfileService {
	return &ProfileService{jwt: jwt}
}

// Create issues a fresh anonymous profile and its bearer token.
func (s *ProfileService) Create() (*domain.Profile, error) {
	id := uuid.New()
	token, expiresAt, err := s.jwt.Generate(id)
	if err != nil {
		return nil, err
	}
	return &domain.Profile{ID: id, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *ProfileService) Authenticate(token string) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, ErrInvalidToken
	}
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := claims.ProfileID()
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
