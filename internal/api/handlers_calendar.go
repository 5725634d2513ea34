package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gravida/internal/services"
)

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	query := calendarRangeQuery{}
	if err := handler.parseQuery(c, &query); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	events, err := handler.calendarService.AssembleRange(subject.UserID, subject.TeamID, query.From, query.To)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"events": newCalendarEventsResponse(events)})
}

func (handler *Handler) OpenMenses(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := mensesPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	event, err := handler.calendarService.OpenMenses(subject.UserID, subject.TeamID, services.MensesInput{
		Beginning: payload.Beginning,
		Ending:    payload.Ending,
		Notes:     payload.Notes,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCalendarEventResponse(event))
}

func (handler *Handler) UpdateMenses(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := mensesPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	event, err := handler.calendarService.UpdateMenses(subject.UserID, subject.TeamID, eventID, services.MensesInput{
		Beginning: payload.Beginning,
		Ending:    payload.Ending,
		Notes:     payload.Notes,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newCalendarEventResponse(event))
}

func (handler *Handler) CloseMenses(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	payload := closeMensesPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	event, err := handler.calendarService.CloseMenses(subject.UserID, subject.TeamID, eventID, payload.Ending)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(newCalendarEventResponse(event))
}

func (handler *Handler) DeleteEvent(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := handler.calendarService.DeleteEvent(subject.UserID, subject.TeamID, eventID); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) RecordMeasurement(c *fiber.Ctx) error {
	subject, ok := currentSubject(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := measurementPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	event, err := handler.calendarService.RecordMeasurement(subject.UserID, subject.TeamID, services.MeasurementInput{
		Kind:  payload.Kind,
		Date:  payload.Date,
		Value: payload.Value,
		Notes: payload.Notes,
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCalendarEventResponse(event))
}
