package middlewares

import "github.com/gofiber/fiber/v2"

// SetupMiddlewares wires the base stack in order: recovery first so a panic in
// any later handler still yields a 500 response.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
