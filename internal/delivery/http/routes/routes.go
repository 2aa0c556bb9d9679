package routes

import (
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry holds every HTTP handler and wires them under /api/v1.
type Registry struct {
	health     *handler.HealthHandler
	auth       *handler.AuthHandler
	users      *handler.UserHandler
	skills     *handler.SkillHandler
	userSkills *handler.UserSkillHandler
	swaps      *handler.SwapHandler
	wsHandler  *ws.Handler

	authMw *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	users *handler.UserHandler,
	skills *handler.SkillHandler,
	userSkills *handler.UserSkillHandler,
	swaps *handler.SwapHandler,
	wsHandler *ws.Handler,
	authMw *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:     health,
		auth:       auth,
		users:      users,
		skills:     skills,
		userSkills: userSkills,
		swaps:      swaps,
		wsHandler:  wsHandler,
		authMw:     authMw,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	r.registerV1(api.Group("/v1"))
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.wsHandler == nil {
		return
	}
	app.Get("/ws/swaps", r.wsHandler.HandleSwapEvents)
}
