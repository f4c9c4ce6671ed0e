package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func (that *Interaction) setupMiddleware(router fiber.Router) {
	router.Use(recover.New())
	router.Use(that.logRequest)
}

func (that *Interaction) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	that.logger.Debug("request handled",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}
