package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.AuthRequired)

	calendar := api.Group("/calendar")
	calendar.Get("", handler.GetCalendar)
	calendar.Post("/menses", handler.OpenMenses)
	calendar.Patch("/menses/:id", handler.UpdateMenses)
	calendar.Post("/menses/:id/close", handler.CloseMenses)
	calendar.Delete("/events/:id", handler.DeleteEvent)
	calendar.Post("/measurements", handler.RecordMeasurement)

	pregnancy := api.Group("/pregnancy")
	pregnancy.Get("", handler.GetPregnancyStatus)
	pregnancy.Put("", handler.SavePregnancy)
	pregnancy.Post("/calculate", handler.CalculatePregnancy)
	pregnancy.Post("/terminate", handler.TerminatePregnancy)

	profile := api.Group("/profile")
	profile.Get("/cycle", handler.GetCycleProfile)
	profile.Put("/cycle", handler.UpdateCycleProfile)
}
