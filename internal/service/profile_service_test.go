package service

import (
	"errors"
	"testing"
	"time"

	"github.com/njprem/MovieShelf_BackEnd/internal/util"
)

func TestProfileServiceCreateAndAuthenticate(t *testing.T) {
	svc := NewProfileService(util.NewJWTManager("secret", time.Hour))

	profile, err := svc.Create()
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	id, err := svc.Authenticate(profile.Token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if id != profile.ID {
		t.Fatalf("expected %s, got %s", profile.ID, id)
	}
}

func TestProfileServiceRejectsBadTokens(t *testing.T) {
	svc := NewProfileService(util.NewJWTManager("secret", time.Hour))
	for _, token := range []string{"", "   ", "not-a-jwt"} {
		if _, err := svc.Authenticate(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}
