package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/booking-system/internal/core/ports"
)

// OfficeHandler handles HTTP requests for office operations.
type OfficeHandler struct {
	service ports.OfficeService
}

func NewOfficeHandler(service ports.OfficeService) *OfficeHandler {
	return &OfficeHandler{service: service}
}

// Create handles POST /offices/.
//
// @Summary      Create an office
// @Tags         offices
// @Accept       json
// @Produce      json
// @Param        body  body      officeRequest  true  "Office"
// @Success      201   {object}  officeResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /offices/ [post]
func (h *OfficeHandler) Create(c echo.Context) error {
	var req officeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	office, err := h.service.Create(c.Request().Context(), toOfficeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOfficeResponse(office))
}

// List handles GET /offices/.
//
// @Summary      List offices
// @Tags         offices
// @Produce      json
// @Param        skip      query     int     false  "Rows to skip"       minimum(0)
// @Param        limit     query     int     false  "Page size"          minimum(1) maximum(100)
// @Param        location  query     string  false  "Exact location match"
// @Success      200       {object}  pageResponse[officeResponse]
// @Failure      400       {object}  errorResponse
// @Router       /offices/ [get]
func (h *OfficeHandler) List(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}

	var filter ports.OfficeFilter
	if loc := c.QueryParam("location"); loc != "" {
		filter.Location = &loc
	}

	result, err := h.service.List(c.Request().Context(), filter, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPageResponse(result, toOfficeResponse))
}

// Get handles GET /offices/:id.
//
// @Summary      Get an office
// @Tags         offices
// @Produce      json
// @Param        id   path      int  true  "Office ID"
// @Success      200  {object}  officeResponse
// @Failure      404  {object}  errorResponse
// @Router       /offices/{id} [get]
func (h *OfficeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	office, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOfficeResponse(office))
}

// Update handles PUT /offices/:id. Every field is replaced.
//
// @Summary      Replace an office
// @Tags         offices
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Office ID"
// @Param        body  body      officeRequest  true  "Office"
// @Success      200   {object}  officeResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /offices/{id} [put]
func (h *OfficeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req officeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	office, err := h.service.Update(c.Request().Context(), id, toOfficeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOfficeResponse(office))
}

// Delete handles DELETE /offices/:id. Rooms of the office are kept.
//
// @Summary      Delete an office
// @Tags         offices
// @Produce      json
// @Param        id   path      int  true  "Office ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /offices/{id} [delete]
func (h *OfficeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Office successfully deleted"})
}
