package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/gravida/internal/db"
	"github.com/terraincognita07/gravida/internal/models"
	"github.com/terraincognita07/gravida/internal/services"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type jsonBody = map[string]any

type testApp struct {
	app     *fiber.App
	handler *Handler
	user    models.User
	token   string
	now     time.Time
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "gravida-api.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	team := models.Team{Name: "clinic"}
	if err := repos.Teams.Create(&team); err != nil {
		t.Fatalf("create team: %v", err)
	}
	user := models.User{
		Email:                "subject@gravida.local",
		TeamID:               &team.ID,
		DurationPeriod:       models.DefaultDurationPeriod,
		DurationMenstruation: models.DefaultDurationMenstruation,
	}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	handler, err := NewHandler(database, testSecretKey, time.UTC, zerolog.Nop())
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	handler.WithClock(services.FixedClock{At: now})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterRoutes(app, handler)

	token, err := BuildToken([]byte(testSecretKey), user.ID, team.ID, time.Hour, now)
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	return testApp{app: app, handler: handler, user: user, token: token, now: now}
}

func (ta testApp) request(t *testing.T, method string, path string, payload any) (int, []byte) {
	t.Helper()
	return doRequest(t, ta.app, method, path, ta.token, payload)
}

func doRequest(t *testing.T, app *fiber.App, method string, path string, token string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return response.StatusCode, raw
}

func decodeJSON(t *testing.T, raw []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("decode %s: %v", string(raw), err)
	}
}

func expectStatus(t *testing.T, got int, want int, body []byte) {
	t.Helper()
	if got != want {
		t.Fatalf("expected status %d, got %d: %s", want, got, string(body))
	}
}

