package repository

import (
	"context"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, name, email, password_hash,
	COALESCE(location, ''), COALESCE(location_type, ''), COALESCE(availability_type, ''),
	COALESCE(about, ''), rating, is_public, show_location, show_email, is_banned,
	created_at, updated_at`

// SwapperQueryRepository is the public browse/search side of the user store.
type SwapperQueryRepository interface {
	ListSwappers(ctx context.Context, f SwapperFilter) ([]SwapperRow, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, location, location_type, availability_type)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Location, u.LocationType, u.AvailabilityType,
	)
	return err
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) ExistsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1 AND is_banned = FALSE)`, id)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, upd user.ProfileUpdate) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET about = COALESCE($2, about),
		     is_public = COALESCE($3, is_public),
		     show_location = COALESCE($4, show_location),
		     show_email = COALESCE($5, show_email),
		     updated_at = now()
		 WHERE id = $1`,
		id, upd.About, upd.IsPublic, upd.ShowLocation, upd.ShowEmail,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, upd user.AvailabilityUpdate) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE users
		 SET availability_type = $2,
		     location_type = COALESCE($3, location_type),
		     location = COALESCE($4, location),
		     updated_at = now()
		 WHERE id = $1`,
		id, upd.AvailabilityType, upd.LocationType, upd.Location,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Location, &u.LocationType, &u.AvailabilityType,
		&u.About, &u.Rating, &u.IsPublic, &u.ShowLocation, &u.ShowEmail, &u.IsBanned,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

// SwapperRow is a public profile entry for the browse/search listing.
type SwapperRow struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Location         string    `json:"location,omitempty"`
	LocationType     string    `json:"location_type,omitempty"`
	AvailabilityType string    `json:"availability_type,omitempty"`
	About            string    `json:"about,omitempty"`
	Rating           *float64  `json:"rating,omitempty"`
	OfferedSkills    []string  `json:"offered_skills"`
	WantedSkills     []string  `json:"wanted_skills"`
}

type SwapperFilter struct {
	Name          string
	SkillSearch   string
	SkillCategory string
	Location      string
}

func (r *PostgresUserRepository) ListSwappers(ctx context.Context, f SwapperFilter) ([]SwapperRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.name,
		        CASE WHEN u.show_location THEN COALESCE(u.location, '') ELSE '' END,
		        COALESCE(u.location_type, ''), COALESCE(u.availability_type, ''),
		        COALESCE(u.about, ''), u.rating,
		        COALESCE(off.names, '{}'), COALESCE(want.names, '{}')
		 FROM users u
		 LEFT JOIN LATERAL (
		     SELECT array_agg(s.name ORDER BY s.name) AS names
		     FROM user_skills us JOIN skills s ON s.id = us.skill_id
		     WHERE us.user_id = u.id AND us.kind = 'offered'
		 ) off ON TRUE
		 LEFT JOIN LATERAL (
		     SELECT array_agg(s.name ORDER BY s.name) AS names
		     FROM user_skills us JOIN skills s ON s.id = us.skill_id
		     WHERE us.user_id = u.id AND us.kind = 'wanted'
		 ) want ON TRUE
		 WHERE u.is_public = TRUE AND u.is_banned = FALSE
		   AND ($1 = '' OR u.name ILIKE '%' || $1 || '%')
		   AND ($2 = '' OR EXISTS (
		       SELECT 1 FROM user_skills us JOIN skills s ON s.id = us.skill_id
		       WHERE us.user_id = u.id
		         AND (s.name ILIKE '%' || $2 || '%' OR s.description ILIKE '%' || $2 || '%')
		   ))
		   AND ($3 = '' OR EXISTS (
		       SELECT 1 FROM user_skills us JOIN skills s ON s.id = us.skill_id
		       WHERE us.user_id = u.id AND s.category = $3
		   ))
		   AND ($4 = '' OR u.location ILIKE '%' || $4 || '%')
		 ORDER BY u.rating DESC NULLS LAST, u.name ASC`,
		f.Name, f.SkillSearch, f.SkillCategory, f.Location,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SwapperRow, 0)
	for rows.Next() {
		var s SwapperRow
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Location, &s.LocationType, &s.AvailabilityType,
			&s.About, &s.Rating, &s.OfferedSkills, &s.WantedSkills,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
