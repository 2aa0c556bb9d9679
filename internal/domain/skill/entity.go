package skill

import (
	"time"

	"github.com/google/uuid"
)

type Skill struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// Kind is the direction of a user-skill association: a skill a user can
// teach (offered) or one they are looking to learn (wanted).
type Kind string

const (
	KindOffered Kind = "offered"
	KindWanted  Kind = "wanted"
)

func (k Kind) Valid() bool {
	return k == KindOffered || k == KindWanted
}

// UserSkill links a user to a catalog skill in one direction. Its ID is what
// swap requests reference, not the skill's.
type UserSkill struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
