package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tallerpro/taller-api/pkg/logger"
)

// RequestLogger devuelve un middleware Fiber que registra cada petición HTTP
// con método, ruta, estado y latencia. Usa un sublogger etiquetado para que
// los logs de acceso sean filtrables del resto de la aplicación.
func RequestLogger(log *logger.Logger) fiber.Handler {
	accessLog := log.Component("http")

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		evt := accessLog.Info()
		if status >= fiber.StatusInternalServerError {
			evt = accessLog.Error()
		} else if status >= fiber.StatusBadRequest {
			evt = accessLog.Warn()
		}

		evt.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("request")

		return err
	}
}
