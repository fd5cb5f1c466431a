package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/booking-system/internal/api/metrics"
	"github.com/99minutos/booking-system/internal/core/domain"
	"github.com/99minutos/booking-system/internal/core/ports"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /bookings/.
//
// @Summary      Book a room
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string          false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      bookingRequest  true   "Booking"
// @Success      201              {object}  bookingResponse
// @Success      200              {object}  bookingResponse  "Replay of an earlier request with the same key"
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /bookings/ [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req bookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := toBookingInput(req, c.Request().Header.Get(headerIdempotencyKey))
	result, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		countConflict(err)
		return err
	}

	if result.Replayed {
		return c.JSON(http.StatusOK, toBookingResponse(result.Booking))
	}
	metrics.BookingsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toBookingResponse(result.Booking))
}

// List handles GET /bookings/. Each item carries its room.
//
// @Summary      List bookings
// @Tags         bookings
// @Produce      json
// @Param        skip     query     int  false  "Rows to skip"  minimum(0)
// @Param        limit    query     int  false  "Page size"     minimum(1) maximum(100)
// @Param        user_id  query     int  false  "User filter"
// @Param        room_id  query     int  false  "Room filter"
// @Success      200      {object}  pageResponse[bookingWithRoomResponse]
// @Failure      400      {object}  errorResponse
// @Router       /bookings/ [get]
func (h *BookingHandler) List(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}

	var filter ports.BookingFilter
	if filter.UserID, err = optionalInt64(c, "user_id"); err != nil {
		return err
	}
	if filter.RoomID, err = optionalInt64(c, "room_id"); err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(result, toBookingWithRoomResponse))
}

// Get handles GET /bookings/:id.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  bookingResponse
// @Failure      404  {object}  errorResponse
// @Router       /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	booking, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

// Update handles PUT /bookings/:id.
//
// @Summary      Replace a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Booking ID"
// @Param        body  body      bookingRequest  true  "Booking"
// @Success      200   {object}  bookingResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req bookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.service.Update(c.Request().Context(), id, toBookingInput(req, ""))
	if err != nil {
		countConflict(err)
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(booking))
}

// Delete handles DELETE /bookings/:id.
//
// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      int  true  "Booking ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Booking successfully deleted"})
}

func countConflict(err error) {
	if errors.Is(err, domain.ErrBookingOverlap) {
		metrics.BookingConflictsTotal.Inc()
	}
}
