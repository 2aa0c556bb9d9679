package usecase

import (
	"context"
	"errors"
	"strings"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrSkillAlreadyExists = errors.New("skill already exists")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)

type CreateSkillInput struct {
	Name        string
	Category    string
	Description string
	IsApproved  bool
}

type UpdateSkillInput struct {
	Name        *string
	Category    *string
	Description *string
	IsApproved  *bool
}

type SkillUsecase interface {
	List(ctx context.Context, f repository.SkillFilter) ([]skill.Skill, error)
	Get(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	Create(ctx context.Context, in CreateSkillInput) (skill.Skill, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateSkillInput) (skill.Skill, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)
}

type Skill struct {
	repo repository.SkillRepository
}

func NewSkillUsecase(repo repository.SkillRepository) *Skill {
	return &Skill{repo: repo}
}

func (u *Skill) List(ctx context.Context, f repository.SkillFilter) ([]skill.Skill, error) {
	out, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skill) Get(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, ErrInternal
	}
	return s, nil
}

func (u *Skill) Create(ctx context.Context, in CreateSkillInput) (skill.Skill, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return skill.Skill{}, ErrInvalidInput
	}

	exists, err := u.repo.ExistsByName(ctx, name)
	if err != nil {
		return skill.Skill{}, ErrInternal
	}
	if exists {
		return skill.Skill{}, ErrSkillAlreadyExists
	}

	created, err := u.repo.Create(ctx, skill.Skill{
		ID:          uuid.New(),
		Name:        name,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		IsApproved:  in.IsApproved,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return skill.Skill{}, ErrSkillAlreadyExists
		}
		return skill.Skill{}, ErrInternal
	}
	return created, nil
}

func (u *Skill) Update(ctx context.Context, id uuid.UUID, in UpdateSkillInput) (skill.Skill, error) {
	if in.Name == nil && in.Category == nil && in.Description == nil && in.IsApproved == nil {
		return skill.Skill{}, ErrNoFieldsToUpdate
	}
	if in.Name != nil && len(strings.TrimSpace(*in.Name)) < 2 {
		return skill.Skill{}, ErrInvalidInput
	}

	updated, err := u.repo.Update(ctx, id, in.Name, in.Category, in.Description, in.IsApproved)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSkillNotFound):
			return skill.Skill{}, ErrSkillNotFound
		case isUniqueViolation(err):
			return skill.Skill{}, ErrSkillAlreadyExists
		default:
			return skill.Skill{}, ErrInternal
		}
	}
	return updated, nil
}

func (u *Skill) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return ErrSkillNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Skill) Categories(ctx context.Context) ([]string, error) {
	out, err := u.repo.Categories(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}
