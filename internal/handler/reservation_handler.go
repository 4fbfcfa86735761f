package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"tablebook/internal/errors"
	"tablebook/internal/model"
	"tablebook/internal/service"
)

// ReservationHandler handles reservation endpoints.
type ReservationHandler struct {
	reservationService service.ReservationService
}

// NewReservationHandler creates a new reservation handler.
func NewReservationHandler(reservationService service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// CreateReservationRequest represents a reservation request.
type CreateReservationRequest struct {
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	Email           string `json:"email" validate:"required"`
	PartySize       int    `json:"party_size" validate:"required"`
	Occasion        string `json:"occasion" validate:"required"`
	ReservationDate string `json:"reservation_date" validate:"required"`
	ReservationTime string `json:"reservation_time" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	SpecialRequests string `json:"special_requests"`
}

// UpdateStatusRequest represents a status change request.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ReservationSummary is the condensed view returned on creation.
type ReservationSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	PartySize int       `json:"partySize"`
	Occasion  string    `json:"occasion"`
}

// CreateReservationResponse is the body returned on successful creation.
type CreateReservationResponse struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	Reservation ReservationSummary `json:"reservation"`
}

// ListReservationsResponse is the body returned when listing reservations.
type ListReservationsResponse struct {
	Success      bool                `json:"success"`
	Reservations []model.Reservation `json:"reservations"`
}

// ReservationResponse is the body returned for a single reservation.
type ReservationResponse struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message,omitempty"`
	Reservation *model.Reservation `json:"reservation"`
}

// MessageResponse is the body returned when there is no record to return.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateReservation godoc
// @Summary Create a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body CreateReservationRequest true "Reservation data"
// @Success 201 {object} CreateReservationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "All required fields must be filled",
		})
	}

	reservation, err := h.reservationService.Create(c.Request().Context(), service.CreateReservationInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		PartySize:       req.PartySize,
		Occasion:        req.Occasion,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		Phone:           req.Phone,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusCreated, CreateReservationResponse{
		Success: true,
		Message: "Reservation created successfully!",
		Reservation: ReservationSummary{
			ID:        reservation.ID.String(),
			Name:      fmt.Sprintf("%s %s", reservation.FirstName, reservation.LastName),
			Email:     reservation.Email,
			Date:      reservation.ReservationDate,
			Time:      reservation.ReservationTime,
			PartySize: reservation.PartySize,
			Occasion:  string(reservation.Occasion),
		},
	})
}

// ListReservations godoc
// @Summary List reservations
// @Tags reservations
// @Produce json
// @Param status query string false "Filter by status (pending, confirmed, cancelled)"
// @Param date query string false "Filter by calendar date (YYYY-MM-DD)"
// @Success 200 {object} ListReservationsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reservations [get]
func (h *ReservationHandler) ListReservations(c echo.Context) error {
	reservations, err := h.reservationService.List(c.Request().Context(), service.ListReservationsInput{
		Status: c.QueryParam("status"),
		Date:   c.QueryParam("date"),
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, ListReservationsResponse{
		Success:      true,
		Reservations: reservations,
	})
}

// GetReservation godoc
// @Summary Get a reservation by id
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} ReservationResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	id, err := h.reservationID(c)
	if err != nil {
		return err
	}

	reservation, err := h.reservationService.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, ReservationResponse{
		Success:     true,
		Reservation: reservation,
	})
}

// UpdateReservationStatus godoc
// @Summary Update reservation status
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} ReservationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reservations/{id}/status [patch]
func (h *ReservationHandler) UpdateReservationStatus(c echo.Context) error {
	id, err := h.reservationID(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Message: "Invalid request body",
		})
	}

	reservation, err := h.reservationService.UpdateStatus(
		c.Request().Context(), id, model.ReservationStatus(req.Status))
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, ReservationResponse{
		Success:     true,
		Message:     "Reservation status updated successfully",
		Reservation: reservation,
	})
}

// DeleteReservation godoc
// @Summary Delete a reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c echo.Context) error {
	id, err := h.reservationID(c)
	if err != nil {
		return err
	}

	if err := h.reservationService.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Reservation deleted successfully",
	})
}

// reservationID parses the :id path parameter. A malformed id cannot name
// any record, so it is reported the same way as a missing one.
func (h *ReservationHandler) reservationID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Message: errors.ErrReservationNotFound.Error(),
		})
	}
	return id, nil
}

// fail maps a service error onto the failure envelope, logging anything that
// surfaces as an internal error.
func (h *ReservationHandler) fail(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
