package handler

import (
	"errors"

	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/domain/skill"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type addUserSkillRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me/skills", h.List)
	r.Post("/me/skills/offered", h.addWithKind(skill.KindOffered))
	r.Post("/me/skills/wanted", h.addWithKind(skill.KindWanted))
	r.Delete("/me/skills/offered/:skillId", h.removeWithKind(skill.KindOffered))
	r.Delete("/me/skills/wanted/:skillId", h.removeWithKind(skill.KindWanted))
}

func (h *UserSkillHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	offered, wanted, err := h.uc.List(c.Context(), userID)
	if err != nil {
		return mapUserSkillUsecaseError(err)
	}

	data := map[string]any{
		"offered_skills": offered,
		"wanted_skills":  wanted,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *UserSkillHandler) addWithKind(kind skill.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := middleware.UserIDFromCtx(c)
		if !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		var req addUserSkillRequest
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}

		created, err := h.uc.Add(c.Context(), userID, req.SkillID, kind)
		if err != nil {
			return mapUserSkillUsecaseError(err)
		}
		return response.Success(c, fiber.StatusCreated, "Skill added successfully", created)
	}
}

func (h *UserSkillHandler) removeWithKind(kind skill.Kind) fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := middleware.UserIDFromCtx(c)
		if !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		skillID, err := uuid.Parse(c.Params("skillId"))
		if err != nil {
			return middleware.NewAppError(fiber.StatusNotFound, "User skill not found", nil, err)
		}

		if err := h.uc.Remove(c.Context(), userID, skillID, kind); err != nil {
			return mapUserSkillUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, "Skill removed successfully", nil)
	}
}

func mapUserSkillUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User skill not found", nil, err)
	case errors.Is(err, usecase.ErrUserSkillExists):
		return middleware.NewAppError(fiber.StatusConflict, "Skill already added", nil, err)
	case errors.Is(err, usecase.ErrUserSkillInUse):
		return middleware.NewAppError(fiber.StatusConflict, "Skill is referenced by a swap request", nil, err)
	case errors.Is(err, usecase.ErrSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Skill not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
