package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultAuthFailureLimit  = 20
	defaultAuthFailureWindow = 15 * time.Minute
)

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	key := requestLimiterKey(c)
	now := handler.clock.Now()
	if handler.authLimiter.blocked(key, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many failed authentication attempts")
	}

	claims, err := parseToken(bearerToken(c), handler.secretKey, now)
	if err != nil {
		handler.authLimiter.recordFailure(key, now)
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextSubjectKey, authSubject{UserID: claims.UserID, TeamID: claims.TeamID})
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
