package usecase

import (
	"context"
	"errors"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/swap"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"
	"skill-swap/internal/ws"

	"github.com/google/uuid"
)

var (
	// ErrSwapNotFound deliberately covers "does not exist", "not pending" and
	// "not your role": surfacing them identically keeps callers from probing
	// other users' requests.
	ErrSwapNotFound        = errors.New("swap request not found")
	ErrSelfSwap            = errors.New("cannot create swap request with yourself")
	ErrResponderNotFound   = errors.New("responder not found or banned")
	ErrOfferedSkillInvalid = errors.New("offered skill does not belong to requester")
	ErrWantedSkillInvalid  = errors.New("wanted skill does not belong to responder")
	ErrDuplicatePending    = errors.New("pending swap request already exists")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated        = errors.New("swap already rated by this user")
)

type CreateSwapInput struct {
	ResponderID        uuid.UUID
	OfferedUserSkillID uuid.UUID
	WantedUserSkillID  uuid.UUID
}

type RateSwapInput struct {
	Rating   int
	Feedback string
}

type SwapUsecase interface {
	Create(ctx context.Context, requesterID uuid.UUID, in CreateSwapInput) (swap.Request, error)
	Accept(ctx context.Context, swapID, callerID uuid.UUID) error
	Reject(ctx context.Context, swapID, callerID uuid.UUID) error
	Cancel(ctx context.Context, swapID, callerID uuid.UUID) error
	Rate(ctx context.Context, swapID, raterID uuid.UUID, in RateSwapInput) error
	Get(ctx context.Context, swapID, callerID uuid.UUID) (swap.Detail, error)
	ListForUser(ctx context.Context, callerID uuid.UUID, status string) ([]swap.Detail, error)
}

// SwapNotifier is the outbound event hook; ws.Notifier satisfies it.
type SwapNotifier interface {
	NotifySwapEvent(recipientID uuid.UUID, eventType string, swapID, actorID uuid.UUID)
}

type Swap struct {
	swaps      repository.SwapRepository
	ratings    repository.RatingRepository
	users      user.Repository
	userSkills repository.UserSkillRepository
	notifier   SwapNotifier
}

func NewSwapUsecase(
	swaps repository.SwapRepository,
	ratings repository.RatingRepository,
	users user.Repository,
	userSkills repository.UserSkillRepository,
	notifier SwapNotifier,
) *Swap {
	return &Swap{swaps: swaps, ratings: ratings, users: users, userSkills: userSkills, notifier: notifier}
}

// Create validates the request in a fixed order (first failure wins):
// responder active, no self-swap, both user-skill ids owned by the right
// party, no pending request for the ordered pair. The partial unique index
// on pending pairs backs the last check against concurrent creates.
func (u *Swap) Create(ctx context.Context, requesterID uuid.UUID, in CreateSwapInput) (swap.Request, error) {
	active, err := u.users.ExistsActive(ctx, in.ResponderID)
	if err != nil {
		return swap.Request{}, ErrInternal
	}
	if !active {
		return swap.Request{}, ErrResponderNotFound
	}

	if requesterID == in.ResponderID {
		return swap.Request{}, ErrSelfSwap
	}

	offered, err := u.userSkills.GetByID(ctx, in.OfferedUserSkillID)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return swap.Request{}, ErrOfferedSkillInvalid
		}
		return swap.Request{}, ErrInternal
	}
	if offered.UserID != requesterID || offered.Kind != skill.KindOffered {
		return swap.Request{}, ErrOfferedSkillInvalid
	}

	// The "wanted" id must be something the responder offers.
	wanted, err := u.userSkills.GetByID(ctx, in.WantedUserSkillID)
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return swap.Request{}, ErrWantedSkillInvalid
		}
		return swap.Request{}, ErrInternal
	}
	if wanted.UserID != in.ResponderID || wanted.Kind != skill.KindOffered {
		return swap.Request{}, ErrWantedSkillInvalid
	}

	pending, err := u.swaps.HasPending(ctx, requesterID, in.ResponderID)
	if err != nil {
		return swap.Request{}, ErrInternal
	}
	if pending {
		return swap.Request{}, ErrDuplicatePending
	}

	created, err := u.swaps.Insert(ctx, swap.Request{
		ID:                 uuid.New(),
		RequesterID:        requesterID,
		ResponderID:        in.ResponderID,
		OfferedUserSkillID: in.OfferedUserSkillID,
		WantedUserSkillID:  in.WantedUserSkillID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return swap.Request{}, ErrDuplicatePending
		}
		return swap.Request{}, ErrInternal
	}

	u.notify(created.ResponderID, ws.EventSwapCreated, created.ID, requesterID)
	return created, nil
}

func (u *Swap) Accept(ctx context.Context, swapID, callerID uuid.UUID) error {
	return u.transition(ctx, swapID, callerID, repository.RoleResponder, swap.StatusAccepted, ws.EventSwapAccepted)
}

func (u *Swap) Reject(ctx context.Context, swapID, callerID uuid.UUID) error {
	return u.transition(ctx, swapID, callerID, repository.RoleResponder, swap.StatusRejected, ws.EventSwapRejected)
}

func (u *Swap) Cancel(ctx context.Context, swapID, callerID uuid.UUID) error {
	return u.transition(ctx, swapID, callerID, repository.RoleRequester, swap.StatusCancelled, ws.EventSwapCancelled)
}

func (u *Swap) transition(ctx context.Context, swapID, callerID uuid.UUID, role repository.Role, to swap.Status, event string) error {
	err := u.swaps.Transition(ctx, swapID, callerID, role, to)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return ErrSwapNotFound
		}
		return ErrInternal
	}

	if d, err := u.swaps.GetForParticipant(ctx, swapID, callerID); err == nil {
		if other, ok := d.Other(callerID); ok {
			u.notify(other, event, swapID, callerID)
		}
	}
	return nil
}

// Rate records a 1-5 score against the other participant of an accepted
// swap, then recomputes that participant's displayed average.
func (u *Swap) Rate(ctx context.Context, swapID, raterID uuid.UUID, in RateSwapInput) error {
	if in.Rating < 1 || in.Rating > 5 {
		return ErrInvalidRating
	}

	req, err := u.swaps.GetAcceptedForParticipant(ctx, swapID, raterID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return ErrSwapNotFound
		}
		return ErrInternal
	}

	ratedUserID, ok := req.Other(raterID)
	if !ok {
		return ErrSwapNotFound
	}

	err = u.ratings.Create(ctx, swap.Rating{
		ID:          uuid.New(),
		RatedUserID: ratedUserID,
		RaterUserID: raterID,
		SwapID:      swapID,
		Rating:      in.Rating,
		Feedback:    in.Feedback,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyRated
		}
		return ErrInternal
	}

	if err := u.ratings.RecomputeUserRating(ctx, ratedUserID); err != nil {
		return ErrInternal
	}

	u.notify(ratedUserID, ws.EventSwapRated, swapID, raterID)
	return nil
}

func (u *Swap) Get(ctx context.Context, swapID, callerID uuid.UUID) (swap.Detail, error) {
	d, err := u.swaps.GetForParticipant(ctx, swapID, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrSwapNotFound) {
			return swap.Detail{}, ErrSwapNotFound
		}
		return swap.Detail{}, ErrInternal
	}
	return d, nil
}

func (u *Swap) ListForUser(ctx context.Context, callerID uuid.UUID, status string) ([]swap.Detail, error) {
	out, err := u.swaps.ListForUser(ctx, callerID, status)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Swap) notify(recipientID uuid.UUID, event string, swapID, actorID uuid.UUID) {
	if u.notifier == nil {
		return
	}
	u.notifier.NotifySwapEvent(recipientID, event, swapID, actorID)
}
