package api

import "github.com/gofiber/fiber/v2"

const contextSubjectKey = "current_subject"

// authSubject identifies the caller of an authenticated request.
type authSubject struct {
	UserID uint
	TeamID uint
}

func currentSubject(c *fiber.Ctx) (authSubject, bool) {
	subject, ok := c.Locals(contextSubjectKey).(authSubject)
	return subject, ok
}
