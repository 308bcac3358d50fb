package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(seen *string) *fiber.App {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		*seen, _ = c.Locals("ray_id").(string)
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRayID_Generated(t *testing.T) {
	var seen string
	resp, err := newApp(&seen).Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	id := resp.Header.Get(Header)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, seen)
}

func TestRayID_Propagated(t *testing.T) {
	var seen string
	incoming := uuid.NewString()

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, incoming)
	resp, err := newApp(&seen).Test(req)
	require.NoError(t, err)

	assert.Equal(t, incoming, resp.Header.Get(Header))
	assert.Equal(t, incoming, seen)
}

func TestRayID_InvalidReplaced(t *testing.T) {
	var seen string
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(Header, "not-a-uuid")
	resp, err := newApp(&seen).Test(req)
	require.NoError(t, err)

	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(Header))
}
