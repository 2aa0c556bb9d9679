package repository

import (
	"context"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/swap"

	"github.com/google/uuid"
)

type RatingRepository interface {
	Create(ctx context.Context, r swap.Rating) error
	// RecomputeUserRating rewrites the user's displayed rating as the mean of
	// all ratings they have received, rounded to one decimal place. Computed
	// fresh from the rating rows each time.
	RecomputeUserRating(ctx context.Context, userID uuid.UUID) error
}

type PostgresRatingRepository struct {
	db database.DB
}

func NewPostgresRatingRepository(db database.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

func (r *PostgresRatingRepository) Create(ctx context.Context, rating swap.Rating) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_ratings (id, rated_user_id, rater_user_id, swap_id, rating, feedback)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))`,
		rating.ID, rating.RatedUserID, rating.RaterUserID, rating.SwapID, rating.Rating, rating.Feedback,
	)
	return err
}

func (r *PostgresRatingRepository) RecomputeUserRating(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users
		 SET rating = (
		     SELECT ROUND(AVG(rating)::numeric, 1)
		     FROM user_ratings
		     WHERE rated_user_id = $1
		 )
		 WHERE id = $1`,
		userID,
	)
	return err
}
