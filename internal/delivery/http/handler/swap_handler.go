package handler

import (
	"context"
	"errors"

	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SwapHandler struct {
	uc usecase.SwapUsecase
}

type createSwapRequest struct {
	ResponderID        uuid.UUID `json:"responder_id"`
	OfferedUserSkillID uuid.UUID `json:"skill_offered_id"`
	WantedUserSkillID  uuid.UUID `json:"skill_wanted_id"`
}

type rateSwapRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

func NewSwapHandler(uc usecase.SwapUsecase) *SwapHandler {
	return &SwapHandler{uc: uc}
}

func (h *SwapHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Create)
	r.Get("/my-requests", h.MyRequests)
	r.Get("/:id", h.Get)
	r.Put("/:id/accept", h.Accept)
	r.Put("/:id/reject", h.Reject)
	r.Put("/:id/cancel", h.Cancel)
	r.Post("/:id/rate", h.Rate)
}

func (h *SwapHandler) Create(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createSwapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.ResponderID == uuid.Nil || req.OfferedUserSkillID == uuid.Nil || req.WantedUserSkillID == uuid.Nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "responder_id, skill_offered_id and skill_wanted_id are required", nil, nil)
	}

	created, err := h.uc.Create(c.Context(), callerID, usecase.CreateSwapInput{
		ResponderID:        req.ResponderID,
		OfferedUserSkillID: req.OfferedUserSkillID,
		WantedUserSkillID:  req.WantedUserSkillID,
	})
	if err != nil {
		return mapSwapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Swap request created successfully", created)
}

func (h *SwapHandler) MyRequests(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	swaps, err := h.uc.ListForUser(c.Context(), callerID, c.Query("status"))
	if err != nil {
		return mapSwapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, swaps)
}

func (h *SwapHandler) Get(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Swap request not found", nil, err)
	}

	d, err := h.uc.Get(c.Context(), id, callerID)
	if err != nil {
		return mapSwapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}

func (h *SwapHandler) Accept(c fiber.Ctx) error {
	return h.transition(c, h.uc.Accept, "Swap request accepted successfully")
}

func (h *SwapHandler) Reject(c fiber.Ctx) error {
	return h.transition(c, h.uc.Reject, "Swap request rejected successfully")
}

func (h *SwapHandler) Cancel(c fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel, "Swap request cancelled successfully")
}

func (h *SwapHandler) Rate(c fiber.Ctx) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "Swap request not found", nil, err)
	}

	var req rateSwapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Rate(c.Context(), id, callerID, usecase.RateSwapInput{Rating: req.Rating, Feedback: req.Feedback}); err != nil {
		return mapSwapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Rating submitted successfully", nil)
}

func (h *SwapHandler) transition(c fiber.Ctx, op func(context.Context, uuid.UUID, uuid.UUID) error, okMsg string) error {
	callerID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		// An unparsable id is indistinguishable from an unknown one.
		return middleware.NewAppError(fiber.StatusNotFound, "Swap request not found", nil, err)
	}

	if err := op(c.Context(), id, callerID); err != nil {
		return mapSwapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, okMsg, nil)
}

func mapSwapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSelfSwap):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot create swap request with yourself", nil, err)
	case errors.Is(err, usecase.ErrResponderNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Responder not found or is banned", nil, err)
	case errors.Is(err, usecase.ErrOfferedSkillInvalid):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill offered does not belong to you", nil, err)
	case errors.Is(err, usecase.ErrWantedSkillInvalid):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill wanted does not belong to responder", nil, err)
	case errors.Is(err, usecase.ErrDuplicatePending):
		return middleware.NewAppError(fiber.StatusBadRequest, "You already have a pending swap request with this user", nil, err)
	case errors.Is(err, usecase.ErrSwapNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Swap request not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Rating must be between 1 and 5", nil, err)
	case errors.Is(err, usecase.ErrAlreadyRated):
		return middleware.NewAppError(fiber.StatusBadRequest, "You have already rated this swap", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
