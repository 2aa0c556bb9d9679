package repository

import (
	"context"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSkillNotFound = errors.New("skill not found")

type SkillFilter struct {
	Category string
	Search   string
	Approved *bool
}

type SkillRepository interface {
	List(ctx context.Context, f SkillFilter) ([]skill.Skill, error)
	GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, s skill.Skill) (skill.Skill, error)
	Update(ctx context.Context, id uuid.UUID, name, category, description *string, isApproved *bool) (skill.Skill, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Categories(ctx context.Context) ([]string, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `id, name, COALESCE(category, ''), COALESCE(description, ''), is_approved, created_at, updated_at`

func (r *PostgresSkillRepository) List(ctx context.Context, f SkillFilter) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+`
		 FROM skills
		 WHERE ($1 = '' OR category = $1)
		   AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		   AND ($3::boolean IS NULL OR is_approved = $3)
		 ORDER BY name ASC`,
		f.Category, f.Search, f.Approved,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkillFrom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id uuid.UUID) (skill.Skill, error) {
	row := r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = $1`, id)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM skills WHERE LOWER(name) = LOWER($1))`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills (id, name, category, description, is_approved)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		 RETURNING `+skillColumns,
		s.ID, s.Name, s.Category, s.Description, s.IsApproved,
	)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) Update(ctx context.Context, id uuid.UUID, name, category, description *string, isApproved *bool) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE skills
		 SET name = COALESCE($2, name),
		     category = COALESCE($3, category),
		     description = COALESCE($4, description),
		     is_approved = COALESCE($5, is_approved),
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+skillColumns,
		id, name, category, description, isApproved,
	)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	rowsAffected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT category FROM skills WHERE category IS NOT NULL ORDER BY category ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSkill(row database.Row) (skill.Skill, error) {
	var s skill.Skill
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.IsApproved, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return skill.Skill{}, ErrSkillNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func scanSkillFrom(rows database.Rows) (skill.Skill, error) {
	var s skill.Skill
	if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Description, &s.IsApproved, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}
