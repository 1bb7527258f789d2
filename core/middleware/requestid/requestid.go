package requestid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// New returns a middleware that assigns each request a unique id, stored in
// the context locals and echoed in the X-Request-ID response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("request_id", rid)
		c.Set("X-Request-ID", rid)
		return c.Next()
	}
}
