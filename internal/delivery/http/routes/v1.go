package routes

import (
	"github.com/gofiber/fiber/v3"
)

func (r *Registry) registerV1(v1 fiber.Router) {
	auth := r.authMw.Middleware()

	authGroup := v1.Group("/auth")
	r.auth.RegisterRoutes(authGroup)
	r.auth.RegisterProtectedRoutes(authGroup.Group("", auth))

	usersGroup := v1.Group("/users")
	r.users.RegisterPublicRoutes(usersGroup)
	usersProtected := usersGroup.Group("", auth)
	r.users.RegisterProtectedRoutes(usersProtected)
	r.userSkills.RegisterRoutes(usersProtected)

	skillsGroup := v1.Group("/skills")
	r.skills.RegisterPublicRoutes(skillsGroup)
	r.skills.RegisterProtectedRoutes(skillsGroup.Group("", auth))

	swapsGroup := v1.Group("/swaps", auth)
	r.swaps.RegisterRoutes(swapsGroup)
}
