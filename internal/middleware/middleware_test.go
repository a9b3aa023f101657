package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func TestEnsureGameID(t *testing.T) {
	app := fiber.New()
	app.Get("/game/:gameId", EnsureGameID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(GameIDKey).(string))
	})

	id := uuid.New().String()
	tests := []struct {
		path string
		want int
	}{
		{"/game/" + id, fiber.StatusOK},
		{"/game/12345", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
		if err != nil {
			t.Fatalf("GET %s: %v", tt.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("GET %s status = %d; want %d", tt.path, resp.StatusCode, tt.want)
		}
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	app := fiber.New()
	app.Get("/ws/:gameId", WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(WSGameIDKey).(string))
	})

	req := httptest.NewRequest(http.MethodGet, "/ws/abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("plain GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Errorf("plain GET status = %d; want 426", resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/ws/abc", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("upgrade GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("upgrade GET status = %d; want 200", resp.StatusCode)
	}
}
