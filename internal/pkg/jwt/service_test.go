package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestService() *HMACService {
	return NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestHMACService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	tok, err := svc.GenerateAccessToken(userID, "ana@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateAccessToken(tok)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != userID || claims.Email != "ana@example.com" {
		t.Fatalf("claims do not round-trip: %+v", claims)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti")
	}
}

func TestHMACService_TokenTypesAreNotInterchangeable(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	access, err := svc.GenerateAccessToken(userID, "")
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}
	refresh, err := svc.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}

	if _, err := svc.ValidateRefreshToken(access); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
}

func TestHMACService_ExpiredToken(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateAccessToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewHMACService("different", "different", 15*time.Minute, time.Hour)

	tok, err := svc.GenerateAccessToken(uuid.New(), "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := other.ValidateAccessToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_FreshJTIPerToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	a, err := svc.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := svc.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	ca, _ := svc.ValidateRefreshToken(a)
	cb, _ := svc.ValidateRefreshToken(b)
	if ca.ID == "" || ca.ID == cb.ID {
		t.Fatalf("expected distinct jtis, got %q and %q", ca.ID, cb.ID)
	}
}
