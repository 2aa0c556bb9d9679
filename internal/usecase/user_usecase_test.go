package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

type swapperQueryStub struct {
	rows  []repository.SwapperRow
	err   error
	calls int
}

func (s *swapperQueryStub) ListSwappers(context.Context, repository.SwapperFilter) ([]repository.SwapperRow, error) {
	s.calls++
	return s.rows, s.err
}

type cacheStub struct {
	store map[string][]byte
	sets  int
}

func (c *cacheStub) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *cacheStub) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = b
	c.sets++
	return nil
}

func (c *cacheStub) DeleteByPattern(context.Context, string) error {
	c.store = map[string][]byte{}
	return nil
}

type userSkillListStub struct {
	userSkillRepoStub
	items []skill.UserSkill
}

func (s *userSkillListStub) FindByUserID(context.Context, uuid.UUID) ([]skill.UserSkill, error) {
	return s.items, nil
}

func TestUserUsecase_ListSwappers_CachesSecondRead(t *testing.T) {
	query := &swapperQueryStub{rows: []repository.SwapperRow{{ID: uuid.New(), Name: "Ana"}}}
	cache := &cacheStub{}
	uc := NewUserUsecase(&userRepoStub{}, query, &userSkillRepoStub{}, cache)

	f := repository.SwapperFilter{SkillSearch: "go"}
	first, err := uc.ListSwappers(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := uc.ListSwappers(context.Background(), f)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if query.calls != 1 {
		t.Fatalf("expected 1 repo call, got %d", query.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].Name != "Ana" {
		t.Fatalf("cached read differs from origin")
	}
}

func TestUserUsecase_ListSwappers_NilCache(t *testing.T) {
	query := &swapperQueryStub{}
	uc := NewUserUsecase(&userRepoStub{}, query, &userSkillRepoStub{}, nil)

	if _, err := uc.ListSwappers(context.Background(), repository.SwapperFilter{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if query.calls != 1 {
		t.Fatalf("expected repo call with nil cache")
	}
}

func TestUserUsecase_GetProfile_PrivacyFlags(t *testing.T) {
	id := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]user.User{id: {
		ID:           id,
		Name:         "Ben",
		Email:        "ben@example.com",
		PasswordHash: "hash",
		Location:     "Berlin",
		ShowEmail:    false,
		ShowLocation: false,
	}}}
	skills := &userSkillListStub{items: []skill.UserSkill{
		{UserID: id, SkillName: "Go", Kind: skill.KindOffered},
		{UserID: id, SkillName: "Piano", Kind: skill.KindWanted},
	}}

	uc := NewUserUsecase(users, &swapperQueryStub{}, skills, nil)
	p, err := uc.GetProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if p.Email != "" || p.Location != "" || p.PasswordHash != "" {
		t.Fatalf("private fields leaked: %+v", p.User)
	}
	if len(p.OfferedSkills) != 1 || len(p.WantedSkills) != 1 {
		t.Fatalf("skills not split by kind")
	}
}

func TestUserUsecase_GetProfile_BannedHidden(t *testing.T) {
	id := uuid.New()
	users := &userRepoStub{users: map[uuid.UUID]user.User{id: {ID: id, IsBanned: true}}}
	uc := NewUserUsecase(users, &swapperQueryStub{}, &userSkillRepoStub{}, nil)

	if _, err := uc.GetProfile(context.Background(), id); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound for banned user, got %v", err)
	}
}

func TestUserUsecase_UpdateAvailability_Validation(t *testing.T) {
	uc := NewUserUsecase(&userRepoStub{}, &swapperQueryStub{}, &userSkillRepoStub{}, nil)

	err := uc.UpdateAvailability(context.Background(), uuid.New(), user.AvailabilityUpdate{AvailabilityType: "sometimes"})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
