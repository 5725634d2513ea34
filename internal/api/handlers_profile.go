package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) GetCycleProfile(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.profileService.Load(subject.UserID, subject.TeamID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newCycleProfileResponse(profile))
}

func (handler *Handler) UpdateCycleProfile(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := cycleDurationsPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := handler.profileService.UpdateCycleDurations(subject.UserID, subject.TeamID, payload.DurationPeriod, payload.DurationMenstruation)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newCycleProfileResponse(profile))
}
