package app

import (
	"fmt"
	"strings"

	"skill-swap/internal/config"
	"skill-swap/internal/delivery/http/handler"
	"skill-swap/internal/delivery/http/middleware"
	"skill-swap/internal/delivery/http/routes"
	"skill-swap/internal/pkg/jwt"
	"skill-swap/internal/repository"
	"skill-swap/internal/usecase"
	"skill-swap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

// Bootstrap builds the container and the fiber app; the returned cleanup
// releases the container's resources.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(f *fiber.App, c *Container) {
	if f == nil {
		return
	}

	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(f *fiber.App, c *Container) {
	if f == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		c.Config.JWT.AccessSecret,
		c.Config.JWT.RefreshSecret,
		c.Config.JWT.AccessExpiresIn,
		c.Config.JWT.RefreshExpiresIn,
	)

	userRepo := repository.NewPostgresUserRepository(c.DB)
	skillRepo := repository.NewPostgresSkillRepository(c.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(c.DB)
	swapRepo := repository.NewPostgresSwapRepository(c.DB)
	ratingRepo := repository.NewPostgresRatingRepository(c.DB)

	notifier := ws.NewNotifier(c.Hub)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc, c.Cache)
	userUC := usecase.NewUserUsecase(userRepo, userRepo, userSkillRepo, c.Cache)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	userSkillUC := usecase.NewUserSkillUsecase(userSkillRepo, skillRepo, c.Cache)
	swapUC := usecase.NewSwapUsecase(swapRepo, ratingRepo, userRepo, userSkillRepo, notifier)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		handler.NewAuthHandler(authUC),
		handler.NewUserHandler(userUC),
		handler.NewSkillHandler(skillUC),
		handler.NewUserSkillHandler(userSkillUC),
		handler.NewSwapHandler(swapUC),
		ws.NewHandler(c.Hub, jwtSvc, c.Logger),
		middleware.NewAuthMiddleware(jwtSvc),
	)
	registry.Register(f)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
