package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skill-swap/internal/domain/user"
	"skill-swap/internal/pkg/jwt"

	"github.com/google/uuid"
)

type tokenStoreStub struct {
	revoked map[string]bool
}

func newTokenStoreStub() *tokenStoreStub {
	return &tokenStoreStub{revoked: map[string]bool{}}
}

func (s *tokenStoreStub) RevokeToken(_ context.Context, jti string, _ time.Duration) error {
	s.revoked[jti] = true
	return nil
}

func (s *tokenStoreStub) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	return s.revoked[jti], nil
}

func newAuthFixture(t *testing.T) (*Auth, *userRepoStub, *tokenStoreStub, user.User) {
	t.Helper()

	usr := user.User{ID: uuid.New(), Email: "ana@example.com"}
	users := &userRepoStub{users: map[uuid.UUID]user.User{usr.ID: usr}}
	tokens := newTokenStoreStub()
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, time.Hour)

	return NewAuthUsecase(users, jwtSvc, tokens), users, tokens, usr
}

func TestAuthUsecase_Refresh_RotatesAndRevokes(t *testing.T) {
	uc, _, tokens, usr := newAuthFixture(t)

	refresh, err := uc.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	oldClaims, err := uc.jwt.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	access, newRefresh, err := uc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if access == "" || newRefresh == "" || newRefresh == refresh {
		t.Fatalf("expected a fresh token pair")
	}
	if !tokens.revoked[oldClaims.ID] {
		t.Fatalf("presented refresh token was not revoked")
	}

	// The old token is now a replay.
	if _, _, err := uc.Refresh(context.Background(), refresh); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken on replay, got %v", err)
	}
}

func TestAuthUsecase_Refresh_GarbageToken(t *testing.T) {
	uc, _, _, _ := newAuthFixture(t)

	if _, _, err := uc.Refresh(context.Background(), "not-a-token"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestAuthUsecase_Refresh_BannedUser(t *testing.T) {
	uc, users, _, usr := newAuthFixture(t)
	banned := usr
	banned.IsBanned = true
	users.users[usr.ID] = banned

	refresh, err := uc.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := uc.Refresh(context.Background(), refresh); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthUsecase_Logout_RevokesValidToken(t *testing.T) {
	uc, _, tokens, usr := newAuthFixture(t)

	refresh, err := uc.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := uc.jwt.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if err := uc.Logout(context.Background(), refresh); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !tokens.revoked[claims.ID] {
		t.Fatalf("logout did not revoke the refresh token")
	}
}

func TestAuthUsecase_Logout_GarbageTokenIsNoop(t *testing.T) {
	uc, _, tokens, _ := newAuthFixture(t)

	if err := uc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(tokens.revoked) != 0 {
		t.Fatalf("nothing should be revoked for a garbage token")
	}
}
