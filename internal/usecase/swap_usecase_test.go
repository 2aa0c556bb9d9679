package usecase

import (
	"context"
	"errors"
	"testing"

	"skill-swap/internal/domain/skill"
	"skill-swap/internal/domain/swap"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type userRepoStub struct {
	users  map[uuid.UUID]user.User
	active map[uuid.UUID]bool
}

func (s *userRepoStub) Create(context.Context, user.User) error { return nil }
func (s *userRepoStub) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}
func (s *userRepoStub) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
func (s *userRepoStub) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }
func (s *userRepoStub) ExistsActive(_ context.Context, id uuid.UUID) (bool, error) {
	return s.active[id], nil
}
func (s *userRepoStub) UpdateProfile(context.Context, uuid.UUID, user.ProfileUpdate) error {
	return nil
}
func (s *userRepoStub) UpdateAvailability(context.Context, uuid.UUID, user.AvailabilityUpdate) error {
	return nil
}

type userSkillRepoStub struct {
	byID map[uuid.UUID]skill.UserSkill
}

func (s *userSkillRepoStub) FindByUserID(context.Context, uuid.UUID) ([]skill.UserSkill, error) {
	return nil, nil
}
func (s *userSkillRepoStub) GetByID(_ context.Context, id uuid.UUID) (skill.UserSkill, error) {
	us, ok := s.byID[id]
	if !ok {
		return skill.UserSkill{}, repository.ErrUserSkillNotFound
	}
	return us, nil
}
func (s *userSkillRepoStub) Create(_ context.Context, us skill.UserSkill) (skill.UserSkill, error) {
	return us, nil
}
func (s *userSkillRepoStub) Delete(context.Context, uuid.UUID, uuid.UUID, skill.Kind) error {
	return nil
}

type transitionCall struct {
	id, callerID uuid.UUID
	role         repository.Role
	to           swap.Status
}

type swapRepoStub struct {
	pending       bool
	insertErr     error
	inserted      *swap.Request
	transitionErr error
	transitions   []transitionCall
	detail        swap.Detail
	detailErr     error
	accepted      swap.Request
	acceptedErr   error
	list          []swap.Detail
	listErr       error
}

func (s *swapRepoStub) Insert(_ context.Context, req swap.Request) (swap.Request, error) {
	if s.insertErr != nil {
		return swap.Request{}, s.insertErr
	}
	req.Status = swap.StatusPending
	s.inserted = &req
	return req, nil
}
func (s *swapRepoStub) HasPending(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return s.pending, nil
}
func (s *swapRepoStub) Transition(_ context.Context, id, callerID uuid.UUID, role repository.Role, to swap.Status) error {
	s.transitions = append(s.transitions, transitionCall{id: id, callerID: callerID, role: role, to: to})
	return s.transitionErr
}
func (s *swapRepoStub) GetForParticipant(context.Context, uuid.UUID, uuid.UUID) (swap.Detail, error) {
	return s.detail, s.detailErr
}
func (s *swapRepoStub) GetAcceptedForParticipant(context.Context, uuid.UUID, uuid.UUID) (swap.Request, error) {
	return s.accepted, s.acceptedErr
}
func (s *swapRepoStub) ListForUser(context.Context, uuid.UUID, string) ([]swap.Detail, error) {
	return s.list, s.listErr
}

type ratingRepoStub struct {
	createErr  error
	created    []swap.Rating
	recomputed []uuid.UUID
}

func (s *ratingRepoStub) Create(_ context.Context, r swap.Rating) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, r)
	return nil
}
func (s *ratingRepoStub) RecomputeUserRating(_ context.Context, userID uuid.UUID) error {
	s.recomputed = append(s.recomputed, userID)
	return nil
}

type notifierStub struct {
	events []struct {
		recipient uuid.UUID
		event     string
		swapID    uuid.UUID
		actor     uuid.UUID
	}
}

func (s *notifierStub) NotifySwapEvent(recipientID uuid.UUID, eventType string, swapID, actorID uuid.UUID) {
	s.events = append(s.events, struct {
		recipient uuid.UUID
		event     string
		swapID    uuid.UUID
		actor     uuid.UUID
	}{recipientID, eventType, swapID, actorID})
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505"}
}

type swapFixture struct {
	requesterID uuid.UUID
	responderID uuid.UUID
	offeredID   uuid.UUID
	wantedID    uuid.UUID

	users      *userRepoStub
	userSkills *userSkillRepoStub
	swaps      *swapRepoStub
	ratings    *ratingRepoStub
	notifier   *notifierStub

	uc *Swap
}

func newSwapFixture() *swapFixture {
	f := &swapFixture{
		requesterID: uuid.New(),
		responderID: uuid.New(),
		offeredID:   uuid.New(),
		wantedID:    uuid.New(),
	}

	f.users = &userRepoStub{active: map[uuid.UUID]bool{f.requesterID: true, f.responderID: true}}
	f.userSkills = &userSkillRepoStub{byID: map[uuid.UUID]skill.UserSkill{
		f.offeredID: {ID: f.offeredID, UserID: f.requesterID, Kind: skill.KindOffered},
		f.wantedID:  {ID: f.wantedID, UserID: f.responderID, Kind: skill.KindOffered},
	}}
	f.swaps = &swapRepoStub{}
	f.ratings = &ratingRepoStub{}
	f.notifier = &notifierStub{}

	f.uc = NewSwapUsecase(f.swaps, f.ratings, f.users, f.userSkills, f.notifier)
	return f
}

func (f *swapFixture) createInput() CreateSwapInput {
	return CreateSwapInput{
		ResponderID:        f.responderID,
		OfferedUserSkillID: f.offeredID,
		WantedUserSkillID:  f.wantedID,
	}
}

func TestSwapUsecase_Create_Success(t *testing.T) {
	f := newSwapFixture()

	created, err := f.uc.Create(context.Background(), f.requesterID, f.createInput())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != swap.StatusPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if f.swaps.inserted == nil || f.swaps.inserted.RequesterID != f.requesterID {
		t.Fatalf("insert not recorded for requester")
	}
	if len(f.notifier.events) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.events))
	}
	if ev := f.notifier.events[0]; ev.recipient != f.responderID || ev.actor != f.requesterID {
		t.Fatalf("notification addressed wrong parties")
	}
}

func TestSwapUsecase_Create_ResponderCheckedFirst(t *testing.T) {
	f := newSwapFixture()
	f.users.active[f.responderID] = false
	// A banned responder wins over every later check, including self-swap.
	in := f.createInput()

	if _, err := f.uc.Create(context.Background(), f.requesterID, in); !errors.Is(err, ErrResponderNotFound) {
		t.Fatalf("expected ErrResponderNotFound, got %v", err)
	}
}

func TestSwapUsecase_Create_SelfSwap(t *testing.T) {
	f := newSwapFixture()
	in := f.createInput()
	in.ResponderID = f.requesterID
	f.users.active[f.requesterID] = true

	if _, err := f.uc.Create(context.Background(), f.requesterID, in); !errors.Is(err, ErrSelfSwap) {
		t.Fatalf("expected ErrSelfSwap, got %v", err)
	}
}

func TestSwapUsecase_Create_OfferedSkillNotOwned(t *testing.T) {
	f := newSwapFixture()
	f.userSkills.byID[f.offeredID] = skill.UserSkill{ID: f.offeredID, UserID: uuid.New(), Kind: skill.KindOffered}

	if _, err := f.uc.Create(context.Background(), f.requesterID, f.createInput()); !errors.Is(err, ErrOfferedSkillInvalid) {
		t.Fatalf("expected ErrOfferedSkillInvalid, got %v", err)
	}
}

func TestSwapUsecase_Create_OfferedSkillWrongKind(t *testing.T) {
	f := newSwapFixture()
	f.userSkills.byID[f.offeredID] = skill.UserSkill{ID: f.offeredID, UserID: f.requesterID, Kind: skill.KindWanted}

	if _, err := f.uc.Create(context.Background(), f.requesterID, f.createInput()); !errors.Is(err, ErrOfferedSkillInvalid) {
		t.Fatalf("expected ErrOfferedSkillInvalid, got %v", err)
	}
}

func TestSwapUsecase_Create_WantedSkillNotResponders(t *testing.T) {
	f := newSwapFixture()
	f.userSkills.byID[f.wantedID] = skill.UserSkill{ID: f.wantedID, UserID: f.requesterID, Kind: skill.KindOffered}

	if _, err := f.uc.Create(context.Background(), f.requesterID, f.createInput()); !errors.Is(err, ErrWantedSkillInvalid) {
		t.Fatalf("expected ErrWantedSkillInvalid, got %v", err)
	}
}

func TestSwapUsecase_Create_WantedSkillMissing(t *testing.T) {
	f := newSwapFixture()
	delete(f.userSkills.byID, f.wantedID)

	if _, err := f.uc.Create(context.Background(), f.requesterID, f.createInput()); !errors.Is(err, ErrWantedSkillInvalid) {
		t.Fatalf("expected ErrWantedSkillInvalid, got %v", err)
	}
}

func TestSwapUsecase_Create_DuplicatePending(t *testing.T) {
	f := newSwapFixture()
	f.swaps.pending = true

	if _, err := f.uc.Create(context.Background(), f.requesterID, f.createInput()); !errors.Is(err, ErrDuplicatePending) {
		t.Fatalf("expected ErrDuplicatePending, got %v", err)
	}
}

func TestSwapUsecase_Create_DuplicatePendingRace(t *testing.T) {
	f := newSwapFixture()
	// The pending check passed but a concurrent create won the unique index.
	f.swaps.insertErr = uniqueViolation()

	if _, err := f.uc.Create(context.Background(), f.requesterID, f.createInput()); !errors.Is(err, ErrDuplicatePending) {
		t.Fatalf("expected ErrDuplicatePending, got %v", err)
	}
}

func TestSwapUsecase_Transitions_RoleAndStatus(t *testing.T) {
	cases := []struct {
		name     string
		op       func(*Swap, context.Context, uuid.UUID, uuid.UUID) error
		wantRole repository.Role
		wantTo   swap.Status
	}{
		{"accept", (*Swap).Accept, repository.RoleResponder, swap.StatusAccepted},
		{"reject", (*Swap).Reject, repository.RoleResponder, swap.StatusRejected},
		{"cancel", (*Swap).Cancel, repository.RoleRequester, swap.StatusCancelled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newSwapFixture()
			swapID := uuid.New()
			callerID := uuid.New()
			otherID := uuid.New()
			f.swaps.detail = swap.Detail{Request: swap.Request{ID: swapID, RequesterID: callerID, ResponderID: otherID}}

			if err := tc.op(f.uc, context.Background(), swapID, callerID); err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(f.swaps.transitions) != 1 {
				t.Fatalf("expected 1 transition call, got %d", len(f.swaps.transitions))
			}
			got := f.swaps.transitions[0]
			if got.role != tc.wantRole || got.to != tc.wantTo {
				t.Fatalf("transition role/status = %v/%s, want %v/%s", got.role, got.to, tc.wantRole, tc.wantTo)
			}
			if len(f.notifier.events) != 1 || f.notifier.events[0].recipient != otherID {
				t.Fatalf("expected notification to the other participant")
			}
		})
	}
}

func TestSwapUsecase_Transition_NotFoundOrNotPending(t *testing.T) {
	f := newSwapFixture()
	f.swaps.transitionErr = repository.ErrSwapNotFound

	if err := f.uc.Accept(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrSwapNotFound) {
		t.Fatalf("expected ErrSwapNotFound, got %v", err)
	}
	if len(f.notifier.events) != 0 {
		t.Fatalf("failed transition must not notify")
	}
}

func TestSwapUsecase_Rate_InvalidRating(t *testing.T) {
	f := newSwapFixture()

	for _, rating := range []int{0, 6, -1} {
		err := f.uc.Rate(context.Background(), uuid.New(), uuid.New(), RateSwapInput{Rating: rating})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestSwapUsecase_Rate_Success(t *testing.T) {
	f := newSwapFixture()
	swapID := uuid.New()
	f.swaps.accepted = swap.Request{
		ID:          swapID,
		RequesterID: f.requesterID,
		ResponderID: f.responderID,
		Status:      swap.StatusAccepted,
	}

	err := f.uc.Rate(context.Background(), swapID, f.requesterID, RateSwapInput{Rating: 4, Feedback: "great"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(f.ratings.created) != 1 {
		t.Fatalf("expected 1 rating, got %d", len(f.ratings.created))
	}
	r := f.ratings.created[0]
	if r.RatedUserID != f.responderID || r.RaterUserID != f.requesterID || r.Rating != 4 {
		t.Fatalf("rating recorded against wrong parties: %+v", r)
	}
	if len(f.ratings.recomputed) != 1 || f.ratings.recomputed[0] != f.responderID {
		t.Fatalf("expected rating recompute for the rated user")
	}
	if len(f.notifier.events) != 1 || f.notifier.events[0].recipient != f.responderID {
		t.Fatalf("expected notification to the rated user")
	}
}

func TestSwapUsecase_Rate_NotAccepted(t *testing.T) {
	f := newSwapFixture()
	f.swaps.acceptedErr = repository.ErrSwapNotFound

	err := f.uc.Rate(context.Background(), uuid.New(), f.requesterID, RateSwapInput{Rating: 3})
	if !errors.Is(err, ErrSwapNotFound) {
		t.Fatalf("expected ErrSwapNotFound, got %v", err)
	}
}

func TestSwapUsecase_Rate_AlreadyRated(t *testing.T) {
	f := newSwapFixture()
	swapID := uuid.New()
	f.swaps.accepted = swap.Request{ID: swapID, RequesterID: f.requesterID, ResponderID: f.responderID}
	f.ratings.createErr = uniqueViolation()

	err := f.uc.Rate(context.Background(), swapID, f.requesterID, RateSwapInput{Rating: 5})
	if !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}
	if len(f.ratings.recomputed) != 0 {
		t.Fatalf("duplicate rating must not trigger a recompute")
	}
}

func TestSwapUsecase_Get_NotParticipant(t *testing.T) {
	f := newSwapFixture()
	f.swaps.detailErr = repository.ErrSwapNotFound

	if _, err := f.uc.Get(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrSwapNotFound) {
		t.Fatalf("expected ErrSwapNotFound, got %v", err)
	}
}

func TestSwapUsecase_ListForUser(t *testing.T) {
	f := newSwapFixture()
	f.swaps.list = []swap.Detail{
		{Request: swap.Request{ID: uuid.New(), Status: swap.StatusPending}},
		{Request: swap.Request{ID: uuid.New(), Status: swap.StatusAccepted}},
	}

	out, err := f.uc.ListForUser(context.Background(), f.requesterID, "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 swaps, got %d", len(out))
	}
}
