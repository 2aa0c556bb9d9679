package repository

import (
	"context"
	"errors"

	"skill-swap/internal/database"
	"skill-swap/internal/domain/swap"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrSwapNotFound covers both "no such swap" and "not yours to touch": the
// guarded queries below return zero rows for either, so callers cannot probe
// for other users' requests.
var ErrSwapNotFound = errors.New("swap request not found")

// Role selects which participant column a guarded transition checks.
type Role int

const (
	RoleRequester Role = iota
	RoleResponder
)

type SwapRepository interface {
	Insert(ctx context.Context, req swap.Request) (swap.Request, error)
	HasPending(ctx context.Context, requesterID, responderID uuid.UUID) (bool, error)
	// Transition flips a pending request to the given terminal status iff
	// callerID occupies the given role. The status guard and the role guard
	// run inside one UPDATE, so concurrent transitions cannot both win.
	Transition(ctx context.Context, id, callerID uuid.UUID, role Role, to swap.Status) error
	GetForParticipant(ctx context.Context, id, userID uuid.UUID) (swap.Detail, error)
	GetAcceptedForParticipant(ctx context.Context, id, userID uuid.UUID) (swap.Request, error)
	ListForUser(ctx context.Context, userID uuid.UUID, status string) ([]swap.Detail, error)
}

type PostgresSwapRepository struct {
	db database.DB
}

func NewPostgresSwapRepository(db database.DB) *PostgresSwapRepository {
	return &PostgresSwapRepository{db: db}
}

const swapDetailSelect = `SELECT sr.id, sr.requester_id, sr.responder_id,
	        sr.offered_user_skill_id, sr.wanted_user_skill_id,
	        sr.status, sr.created_at, sr.updated_at,
	        requester.name, responder.name, so.name, sw.name
	 FROM swap_requests sr
	 JOIN users requester ON requester.id = sr.requester_id
	 JOIN users responder ON responder.id = sr.responder_id
	 JOIN user_skills uso ON uso.id = sr.offered_user_skill_id
	 JOIN skills so ON so.id = uso.skill_id
	 JOIN user_skills usw ON usw.id = sr.wanted_user_skill_id
	 JOIN skills sw ON sw.id = usw.skill_id`

func (r *PostgresSwapRepository) Insert(ctx context.Context, req swap.Request) (swap.Request, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO swap_requests (id, requester_id, responder_id, offered_user_skill_id, wanted_user_skill_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, requester_id, responder_id, offered_user_skill_id, wanted_user_skill_id, status, created_at, updated_at`,
		req.ID, req.RequesterID, req.ResponderID, req.OfferedUserSkillID, req.WantedUserSkillID,
	)

	var created swap.Request
	err := row.Scan(
		&created.ID, &created.RequesterID, &created.ResponderID,
		&created.OfferedUserSkillID, &created.WantedUserSkillID,
		&created.Status, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return swap.Request{}, err
	}
	return created, nil
}

func (r *PostgresSwapRepository) HasPending(ctx context.Context, requesterID, responderID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
		     SELECT 1 FROM swap_requests
		     WHERE requester_id = $1 AND responder_id = $2 AND status = 'pending'
		 )`,
		requesterID, responderID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSwapRepository) Transition(ctx context.Context, id, callerID uuid.UUID, role Role, to swap.Status) error {
	guard := `requester_id`
	if role == RoleResponder {
		guard = `responder_id`
	}

	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE swap_requests
		 SET status = $3, updated_at = now()
		 WHERE id = $1 AND `+guard+` = $2 AND status = 'pending'`,
		id, callerID, to,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrSwapNotFound
	}
	return nil
}

func (r *PostgresSwapRepository) GetForParticipant(ctx context.Context, id, userID uuid.UUID) (swap.Detail, error) {
	row := r.db.QueryRow(ctx,
		swapDetailSelect+` WHERE sr.id = $1 AND (sr.requester_id = $2 OR sr.responder_id = $2)`,
		id, userID,
	)
	return scanSwapDetail(row)
}

func (r *PostgresSwapRepository) GetAcceptedForParticipant(ctx context.Context, id, userID uuid.UUID) (swap.Request, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, requester_id, responder_id, offered_user_skill_id, wanted_user_skill_id, status, created_at, updated_at
		 FROM swap_requests
		 WHERE id = $1 AND (requester_id = $2 OR responder_id = $2) AND status = 'accepted'`,
		id, userID,
	)

	var req swap.Request
	err := row.Scan(
		&req.ID, &req.RequesterID, &req.ResponderID,
		&req.OfferedUserSkillID, &req.WantedUserSkillID,
		&req.Status, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return swap.Request{}, ErrSwapNotFound
		}
		return swap.Request{}, err
	}
	return req, nil
}

func (r *PostgresSwapRepository) ListForUser(ctx context.Context, userID uuid.UUID, status string) ([]swap.Detail, error) {
	rows, err := r.db.Query(ctx,
		swapDetailSelect+`
		 WHERE (sr.requester_id = $1 OR sr.responder_id = $1)
		   AND ($2 = '' OR sr.status = $2)
		 ORDER BY sr.created_at DESC`,
		userID, status,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]swap.Detail, 0)
	for rows.Next() {
		var d swap.Detail
		if err := rows.Scan(
			&d.ID, &d.RequesterID, &d.ResponderID,
			&d.OfferedUserSkillID, &d.WantedUserSkillID,
			&d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.RequesterName, &d.ResponderName, &d.OfferedSkillName, &d.WantedSkillName,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanSwapDetail(row database.Row) (swap.Detail, error) {
	var d swap.Detail
	err := row.Scan(
		&d.ID, &d.RequesterID, &d.ResponderID,
		&d.OfferedUserSkillID, &d.WantedUserSkillID,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
		&d.RequesterName, &d.ResponderName, &d.OfferedSkillName, &d.WantedSkillName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return swap.Detail{}, ErrSwapNotFound
		}
		return swap.Detail{}, err
	}
	return d, nil
}
