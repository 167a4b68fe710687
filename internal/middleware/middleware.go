package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"

	"yummy-backend/domain"
	"yummy-backend/internal/api/presenters"
	"yummy-backend/pkg/jwt"
)

const (
	OwnerKey = "user_id"
	RoleKey  = "role"
)

type (
	Middleware interface {
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		CORSMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

// AuthMiddleware resolves the bearer token into the owner id stored under
// OwnerKey.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUnauthorized, domain.ErrMissingToken)
		}
		ownerID, role, err := jwtService.OwnerFromToken(strings.TrimSpace(token))
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedUnauthorized, err)
		}
		c.Locals(OwnerKey, ownerID)
		c.Locals(RoleKey, role)
		return c.Next()
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

// Owner returns the owner resolved by AuthMiddleware.
func Owner(c *fiber.Ctx) uuid.UUID {
	if id, ok := c.Locals(OwnerKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
