package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/booking-system/internal/core/ports"
)

// RoomHandler handles HTTP requests for room operations.
type RoomHandler struct {
	service ports.RoomService
}

func NewRoomHandler(service ports.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// Create handles POST /rooms/. The office id is stored as given.
//
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        body  body      roomRequest  true  "Room"
// @Success      201   {object}  roomResponse
// @Failure      400   {object}  errorResponse
// @Router       /rooms/ [post]
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	room, err := h.service.Create(c.Request().Context(), toRoomInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRoomResponse(room))
}

// List handles GET /rooms/.
//
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Param        skip       query     int  false  "Rows to skip"  minimum(0)
// @Param        limit      query     int  false  "Page size"     minimum(1) maximum(100)
// @Param        office_id  query     int  false  "Office filter"
// @Param        capacity   query     int  false  "Exact capacity"
// @Success      200        {object}  pageResponse[roomResponse]
// @Failure      400        {object}  errorResponse
// @Router       /rooms/ [get]
func (h *RoomHandler) List(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}

	var filter ports.RoomFilter
	if filter.OfficeID, err = optionalInt64(c, "office_id"); err != nil {
		return err
	}
	if filter.Capacity, err = optionalInt(c, "capacity"); err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(result, toRoomResponse))
}

// Get handles GET /rooms/:id.
//
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room ID"
// @Success      200  {object}  roomResponse
// @Failure      404  {object}  errorResponse
// @Router       /rooms/{id} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	room, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoomResponse(room))
}

// Update handles PUT /rooms/:id.
//
// @Summary      Replace a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Room ID"
// @Param        body  body      roomRequest  true  "Room"
// @Success      200   {object}  roomResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /rooms/{id} [put]
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req roomRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	room, err := h.service.Update(c.Request().Context(), id, toRoomInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRoomResponse(room))
}

// Delete handles DELETE /rooms/:id.
//
// @Summary      Delete a room
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /rooms/{id} [delete]
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Room successfully deleted"})
}

// Availability handles GET /rooms/:id/availability.
//
// @Summary      Check whether a room is free
// @Tags         rooms
// @Produce      json
// @Param        id          path      int     true  "Room ID"
// @Param        start_time  query     string  true  "Interval start"
// @Param        end_time    query     string  true  "Interval end"
// @Success      200         {object}  availabilityResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /rooms/{id}/availability [get]
func (h *RoomHandler) Availability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	start, err := queryTimestamp(c, "start_time")
	if err != nil {
		return err
	}
	end, err := queryTimestamp(c, "end_time")
	if err != nil {
		return err
	}

	free, err := h.service.Availability(c.Request().Context(), id, start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, availabilityResponse{RoomID: id, StartTime: start, EndTime: end, Available: free})
}
