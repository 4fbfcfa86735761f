package router

import (
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"tablebook/internal/config"
	"tablebook/internal/handler"
)

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, reservationHandler *handler.ReservationHandler) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Reservation form and admin dashboard
	e.File("/", filepath.Join(cfg.PublicDir, "reserve1.html"))
	e.File("/reservation", filepath.Join(cfg.PublicDir, "reserve1.html"))
	e.File("/admin", filepath.Join(cfg.PublicDir, "admin.html"))
	e.Static("/", cfg.PublicDir)

	api := e.Group("/api")

	api.POST("/reservations", reservationHandler.CreateReservation)
	api.GET("/reservations", reservationHandler.ListReservations)
	api.GET("/reservations/:id", reservationHandler.GetReservation)
	api.PATCH("/reservations/:id/status", reservationHandler.UpdateReservationStatus)
	api.DELETE("/reservations/:id", reservationHandler.DeleteReservation)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
