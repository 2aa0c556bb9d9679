package handler

import (
	"errors"

	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/domain/user"
	"skill-swap/internal/pkg/response"
	"skill-swap/internal/repository"
	"skill-swap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateProfileRequest struct {
	About        *string `json:"about"`
	IsPublic     *bool   `json:"is_public"`
	ShowLocation *bool   `json:"show_location"`
	ShowEmail    *bool   `json:"show_email"`
}

type updateAvailabilityRequest struct {
	AvailabilityType string  `json:"availability_type"`
	LocationType     *string `json:"location_type"`
	Location         *string `json:"location"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterPublicRoutes wires the endpoints that need no authentication.
func (h *UserHandler) RegisterPublicRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/swappers", h.Swappers)
	r.Get("/profile/:id", h.Profile)
}

func (h *UserHandler) RegisterProtectedRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Put("/profile", h.UpdateProfile)
	r.Put("/availability", h.UpdateAvailability)
}

func (h *UserHandler) Swappers(c fiber.Ctx) error {
	rows, err := h.uc.ListSwappers(c.Context(), repository.SwapperFilter{
		Name:          c.Query("user_name"),
		SkillSearch:   c.Query("skill_search"),
		SkillCategory: c.Query("skill_category"),
		Location:      c.Query("location"),
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, rows)
}

func (h *UserHandler) Profile(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	}

	p, err := h.uc.GetProfile(c.Context(), id)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	err := h.uc.UpdateProfile(c.Context(), userID, user.ProfileUpdate{
		About:        req.About,
		IsPublic:     req.IsPublic,
		ShowLocation: req.ShowLocation,
		ShowEmail:    req.ShowEmail,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Profile updated successfully", nil)
}

func (h *UserHandler) UpdateAvailability(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateAvailabilityRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	err := h.uc.UpdateAvailability(c.Context(), userID, user.AvailabilityUpdate{
		AvailabilityType: req.AvailabilityType,
		LocationType:     req.LocationType,
		Location:         req.Location,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Availability updated successfully", nil)
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
