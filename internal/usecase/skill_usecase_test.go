package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
)

type skillRepoStub struct {
	byID      map[uuid.UUID]skill.Skill
	existing  map[string]bool
	createErr error
	created   *skill.Skill
}

func newSkillRepoStub() *skillRepoStub {
	return &skillRepoStub{byID: map[uuid.UUID]skill.Skill{}, existing: map[string]bool{}}
}

func (s *skillRepoStub) List(context.Context, repository.SkillFilter) ([]skill.Skill, error) {
	return nil, nil
}
func (s *skillRepoStub) GetByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	sk, ok := s.byID[id]
	if !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	return sk, nil
}
func (s *skillRepoStub) ExistsByName(_ context.Context, name string) (bool, error) {
	return s.existing[name], nil
}
func (s *skillRepoStub) Create(_ context.Context, sk skill.Skill) (skill.Skill, error) {
	if s.createErr != nil {
		return skill.Skill{}, s.createErr
	}
	s.created = &sk
	s.byID[sk.ID] = sk
	return sk, nil
}
func (s *skillRepoStub) Update(_ context.Context, id uuid.UUID, name, category, description *string, isApproved *bool) (skill.Skill, error) {
	sk, ok := s.byID[id]
	if !ok {
		return skill.Skill{}, repository.ErrSkillNotFound
	}
	if name != nil {
		sk.Name = *name
	}
	if category != nil {
		sk.Category = *category
	}
	if description != nil {
		sk.Description = *description
	}
	if isApproved != nil {
		sk.IsApproved = *isApproved
	}
	s.byID[id] = sk
	return sk, nil
}
func (s *skillRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.byID[id]; !ok {
		return repository.ErrSkillNotFound
	}
	delete(s.byID, id)
	return nil
}
func (s *skillRepoStub) Categories(context.Context) ([]string, error) { return nil, nil }

func TestSkillUsecase_Create_TrimsAndPersists(t *testing.T) {
	repo := newSkillRepoStub()
	uc := NewSkillUsecase(repo)

	created, err := uc.Create(context.Background(), CreateSkillInput{Name: "  Woodworking  ", Category: " Crafts "})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Name != "Woodworking" || created.Category != "Crafts" {
		t.Fatalf("input not trimmed: %+v", created)
	}
}

func TestSkillUsecase_Create_DuplicateName(t *testing.T) {
	repo := newSkillRepoStub()
	repo.existing["Woodworking"] = true
	uc := NewSkillUsecase(repo)

	_, err := uc.Create(context.Background(), CreateSkillInput{Name: "Woodworking"})
	if !errors.Is(err, ErrSkillAlreadyExists) {
		t.Fatalf("expected ErrSkillAlreadyExists, got %v", err)
	}
}

func TestSkillUsecase_Create_ShortName(t *testing.T) {
	uc := NewSkillUsecase(newSkillRepoStub())

	if _, err := uc.Create(context.Background(), CreateSkillInput{Name: "x"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSkillUsecase_Update_RequiresAField(t *testing.T) {
	uc := NewSkillUsecase(newSkillRepoStub())

	_, err := uc.Update(context.Background(), uuid.New(), UpdateSkillInput{})
	if !errors.Is(err, ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestSkillUsecase_Update_NotFound(t *testing.T) {
	uc := NewSkillUsecase(newSkillRepoStub())
	name := "Pottery"

	_, err := uc.Update(context.Background(), uuid.New(), UpdateSkillInput{Name: &name})
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestUserSkillUsecase_Add_UnknownCatalogSkill(t *testing.T) {
	uc := NewUserSkillUsecase(&userSkillRepoStub{byID: map[uuid.UUID]skill.UserSkill{}}, newSkillRepoStub(), nil)

	_, err := uc.Add(context.Background(), uuid.New(), uuid.New(), skill.KindOffered)
	if !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestUserSkillUsecase_Add_InvalidKind(t *testing.T) {
	uc := NewUserSkillUsecase(&userSkillRepoStub{}, newSkillRepoStub(), nil)

	_, err := uc.Add(context.Background(), uuid.New(), uuid.New(), skill.Kind("teaching"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserSkillUsecase_Add_Success(t *testing.T) {
	skills := newSkillRepoStub()
	catalogID := uuid.New()
	skills.byID[catalogID] = skill.Skill{ID: catalogID, Name: "Go"}

	uc := NewUserSkillUsecase(&userSkillRepoStub{byID: map[uuid.UUID]skill.UserSkill{}}, skills, nil)
	userID := uuid.New()

	created, err := uc.Add(context.Background(), userID, catalogID, skill.KindWanted)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.UserID != userID || created.SkillID != catalogID || created.Kind != skill.KindWanted {
		t.Fatalf("unexpected user skill: %+v", created)
	}
}
