package swap

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a swap request. Pending is the only
// non-terminal state; no transition leaves accepted, rejected or cancelled.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s.Valid() && s != StatusPending
}

type Request struct {
	ID                 uuid.UUID `json:"id"`
	RequesterID        uuid.UUID `json:"requester_id"`
	ResponderID        uuid.UUID `json:"responder_id"`
	OfferedUserSkillID uuid.UUID `json:"skill_offered_id"`
	WantedUserSkillID  uuid.UUID `json:"skill_wanted_id"`
	Status             Status    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Other returns the participant opposite to userID, and whether userID is a
// participant at all.
func (r Request) Other(userID uuid.UUID) (uuid.UUID, bool) {
	switch userID {
	case r.RequesterID:
		return r.ResponderID, true
	case r.ResponderID:
		return r.RequesterID, true
	}
	return uuid.Nil, false
}

// Detail is a request joined with participant and skill names for listings.
type Detail struct {
	Request
	RequesterName    string `json:"requester_name"`
	ResponderName    string `json:"responder_name"`
	OfferedSkillName string `json:"skill_offered_name"`
	WantedSkillName  string `json:"skill_wanted_name"`
}

type Rating struct {
	ID          uuid.UUID `json:"id"`
	RatedUserID uuid.UUID `json:"rated_user_id"`
	RaterUserID uuid.UUID `json:"rater_user_id"`
	SwapID      uuid.UUID `json:"swap_id"`
	Rating      int       `json:"rating"`
	Feedback    string    `json:"feedback,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
