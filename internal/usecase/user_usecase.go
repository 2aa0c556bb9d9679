package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	swapperCacheKeyPrefix = "swappers:"
	swapperCacheTTL       = 60 * time.Second
)

// SwapperCache is the optional read-through cache for the public swapper
// listing; the redis client implements it. A nil cache disables caching.
type SwapperCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Profile is a public view of a user with their skill lists attached,
// privacy flags already applied.
type Profile struct {
	user.User
	OfferedSkills []skill.UserSkill `json:"offered_skills"`
	WantedSkills  []skill.UserSkill `json:"wanted_skills"`
}

type UserUsecase interface {
	ListSwappers(ctx context.Context, f repository.SwapperFilter) ([]repository.SwapperRow, error)
	GetProfile(ctx context.Context, id uuid.UUID) (Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, upd user.ProfileUpdate) error
	UpdateAvailability(ctx context.Context, userID uuid.UUID, upd user.AvailabilityUpdate) error
}

type User struct {
	users      user.Repository
	swappers   repository.SwapperQueryRepository
	userSkills repository.UserSkillRepository
	cache      SwapperCache
}

func NewUserUsecase(
	users user.Repository,
	swappers repository.SwapperQueryRepository,
	userSkills repository.UserSkillRepository,
	cache SwapperCache,
) *User {
	return &User{users: users, swappers: swappers, userSkills: userSkills, cache: cache}
}

func (u *User) ListSwappers(ctx context.Context, f repository.SwapperFilter) ([]repository.SwapperRow, error) {
	key := swapperCacheKey(f)

	if u.cache != nil {
		var cached []repository.SwapperRow
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	rows, err := u.swappers.ListSwappers(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, rows, swapperCacheTTL)
	}
	return rows, nil
}

func (u *User) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, ErrInternal
	}
	if usr.IsBanned {
		return Profile{}, ErrUserNotFound
	}

	usr.PasswordHash = ""
	if !usr.ShowEmail {
		usr.Email = ""
	}
	if !usr.ShowLocation {
		usr.Location = ""
	}

	skills, err := u.userSkills.FindByUserID(ctx, id)
	if err != nil {
		return Profile{}, ErrInternal
	}

	p := Profile{User: usr, OfferedSkills: make([]skill.UserSkill, 0), WantedSkills: make([]skill.UserSkill, 0)}
	for _, us := range skills {
		if us.Kind == skill.KindOffered {
			p.OfferedSkills = append(p.OfferedSkills, us)
		} else {
			p.WantedSkills = append(p.WantedSkills, us)
		}
	}
	return p, nil
}

func (u *User) UpdateProfile(ctx context.Context, userID uuid.UUID, upd user.ProfileUpdate) error {
	if err := u.users.UpdateProfile(ctx, userID, upd); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	u.invalidateSwappers(ctx)
	return nil
}

func (u *User) UpdateAvailability(ctx context.Context, userID uuid.UUID, upd user.AvailabilityUpdate) error {
	if !isValidAvailabilityType(upd.AvailabilityType) {
		return ErrInvalidInput
	}
	if upd.LocationType != nil && *upd.LocationType != "remote" && *upd.LocationType != "local" {
		return ErrInvalidInput
	}

	if err := u.users.UpdateAvailability(ctx, userID, upd); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	u.invalidateSwappers(ctx)
	return nil
}

func (u *User) invalidateSwappers(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, swapperCacheKeyPrefix+"*")
}

func swapperCacheKey(f repository.SwapperFilter) string {
	raw := strings.Join([]string{f.Name, f.SkillSearch, f.SkillCategory, f.Location}, "|")
	sum := sha256.Sum256([]byte(strings.ToLower(raw)))
	return swapperCacheKeyPrefix + hex.EncodeToString(sum[:8])
}

func isValidAvailabilityType(v string) bool {
	switch v {
	case "weekends", "weekdays", "evenings", "flexible":
		return true
	}
	return false
}
