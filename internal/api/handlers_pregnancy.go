package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gravida/internal/services"
)

func (handler *Handler) CalculatePregnancy(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := pregnancyCalculationPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	durationPeriod := payload.DurationPeriod
	if durationPeriod == 0 {
		profile, err := handler.profileService.Load(subject.UserID, subject.TeamID)
		if err != nil {
			return handler.respondServiceError(c, err)
		}
		durationPeriod = profile.DurationPeriod
	}

	estimate, err := handler.calculatorService.Calculate(subject.UserID, subject.TeamID, services.PregnancyCalculationInput{
		LastMensesDate: payload.LastMensesDate,
		DurationPeriod: durationPeriod,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newPregnancyEstimateResponse(estimate))
}

func (handler *Handler) GetPregnancyStatus(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	view, err := handler.pregnancyService.Status(subject.UserID, subject.TeamID)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newPregnancyStatusResponse(view))
}

func (handler *Handler) SavePregnancy(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := pregnancyPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	if _, err := handler.pregnancyService.Save(subject.UserID, subject.TeamID, payload.Childbirthdate, payload.OvulationDate); err != nil {
		return handler.respondServiceError(c, err)
	}
	return handler.GetPregnancyStatus(c)
}

func (handler *Handler) TerminatePregnancy(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := terminatePregnancyPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := handler.pregnancyService.Terminate(subject.UserID, subject.TeamID, payload.PregnancyEnded); err != nil {
		return handler.respondServiceError(c, err)
	}
	return handler.GetPregnancyStatus(c)
}
