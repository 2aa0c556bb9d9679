package usecase

import (
	"context"
	"errors"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrUserSkillNotFound = errors.New("user skill not found")
	ErrUserSkillExists   = errors.New("user skill already exists")
	ErrUserSkillInUse    = errors.New("user skill referenced by a swap request")
)

type UserSkillUsecase interface {
	List(ctx context.Context, userID uuid.UUID) (offered, wanted []skill.UserSkill, err error)
	Add(ctx context.Context, userID, skillID uuid.UUID, kind skill.Kind) (skill.UserSkill, error)
	Remove(ctx context.Context, userID, skillID uuid.UUID, kind skill.Kind) error
}

type UserSkill struct {
	repo   repository.UserSkillRepository
	skills repository.SkillRepository
	cache  SwapperCache
}

func NewUserSkillUsecase(repo repository.UserSkillRepository, skills repository.SkillRepository, cache SwapperCache) *UserSkill {
	return &UserSkill{repo: repo, skills: skills, cache: cache}
}

func (u *UserSkill) List(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, []skill.UserSkill, error) {
	items, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, ErrInternal
	}

	offered := make([]skill.UserSkill, 0, len(items))
	wanted := make([]skill.UserSkill, 0, len(items))
	for _, it := range items {
		if it.Kind == skill.KindOffered {
			offered = append(offered, it)
		} else {
			wanted = append(wanted, it)
		}
	}
	return offered, wanted, nil
}

func (u *UserSkill) Add(ctx context.Context, userID, skillID uuid.UUID, kind skill.Kind) (skill.UserSkill, error) {
	if skillID == uuid.Nil || !kind.Valid() {
		return skill.UserSkill{}, ErrInvalidInput
	}

	if _, err := u.skills.GetByID(ctx, skillID); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.UserSkill{}, ErrSkillNotFound
		}
		return skill.UserSkill{}, ErrInternal
	}

	created, err := u.repo.Create(ctx, skill.UserSkill{
		ID:      uuid.New(),
		UserID:  userID,
		SkillID: skillID,
		Kind:    kind,
	})
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return skill.UserSkill{}, ErrUserSkillExists
		case isForeignKeyViolation(err):
			return skill.UserSkill{}, ErrSkillNotFound
		default:
			return skill.UserSkill{}, ErrInternal
		}
	}

	u.invalidateSwappers(ctx)
	return created, nil
}

func (u *UserSkill) Remove(ctx context.Context, userID, skillID uuid.UUID, kind skill.Kind) error {
	if skillID == uuid.Nil || !kind.Valid() {
		return ErrInvalidInput
	}

	if err := u.repo.Delete(ctx, userID, skillID, kind); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillNotFound):
			return ErrUserSkillNotFound
		case isForeignKeyViolation(err):
			// A swap request still points at this record.
			return ErrUserSkillInUse
		default:
			return ErrInternal
		}
	}

	u.invalidateSwappers(ctx)
	return nil
}

func (u *UserSkill) invalidateSwappers(ctx context.Context) {
	if u.cache == nil {
		return
	}
	_ = u.cache.DeleteByPattern(ctx, swapperCacheKeyPrefix+"*")
}
