package repository

import (
	"context"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserSkillNotFound = errors.New("user skill not found")

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error)
	GetByID(ctx context.Context, id uuid.UUID) (skill.UserSkill, error)
	Create(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error)
	Delete(ctx context.Context, userID, skillID uuid.UUID, kind skill.Kind) error
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillSelect = `SELECT us.id, us.user_id, us.skill_id, s.name, us.kind, us.created_at
	 FROM user_skills us
	 JOIN skills s ON s.id = us.skill_id`

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]skill.UserSkill, error) {
	rows, err := r.db.Query(ctx,
		userSkillSelect+` WHERE us.user_id = $1 ORDER BY us.kind ASC, s.name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.UserSkill, 0)
	for rows.Next() {
		var us skill.UserSkill
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.Kind, &us.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.UserSkill, error) {
	row := r.db.QueryRow(ctx, userSkillSelect+` WHERE us.id = $1`, id)

	var us skill.UserSkill
	if err := row.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.Kind, &us.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.UserSkill{}, ErrUserSkillNotFound
		}
		return skill.UserSkill{}, err
	}
	return us, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, kind) VALUES ($1, $2, $3, $4)`,
		us.ID, us.UserID, us.SkillID, us.Kind,
	)
	if err != nil {
		return skill.UserSkill{}, err
	}
	return r.GetByID(ctx, us.ID)
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, userID, skillID uuid.UUID, kind skill.Kind) error {
	rowsAffected, err := r.db.Exec(ctx,
		`DELETE FROM user_skills WHERE user_id = $1 AND skill_id = $2 AND kind = $3`,
		userID, skillID, kind,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserSkillNotFound
	}
	return nil
}
