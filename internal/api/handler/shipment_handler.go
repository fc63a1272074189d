package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CapDevCostaRica/shipment-core/internal/api/metrics"
	"github.com/CapDevCostaRica/shipment-core/internal/core/ports"
)

// ShipmentHandler handles HTTP requests for shipment operations. All error
// mapping is delegated to the central HTTP error handler.
type ShipmentHandler struct {
	service ports.ShipmentService
}

func NewShipmentHandler(service ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

// Create handles POST /v1/shipments.
//
// @Summary      Create a new shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createShipmentRequest  true  "Shipment details"
// @Success      201   {object}  shipmentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/shipments [post]
func (h *ShipmentHandler) Create(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	var req createShipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shipment, err := h.service.CreateShipment(c.Request().Context(), requester, ports.CreateShipmentInput{
		Origin:      req.Origin,
		Destination: req.Destination,
		CarrierID:   req.CarrierID,
	})
	if err != nil {
		return err
	}

	metrics.ShipmentsCreatedTotal.WithLabelValues(shipment.Origin).Inc()
	return c.JSON(http.StatusCreated, toShipmentResponse(shipment))
}

// Get handles GET /v1/shipments/:id.
//
// @Summary      Get a shipment by id
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shipment id"
// @Success      200  {object}  shipmentResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/shipments/{id} [get]
func (h *ShipmentHandler) Get(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	shipment, err := h.service.GetShipment(c.Request().Context(), requester, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// List handles GET /v1/shipments.
//
// @Summary      List shipments visible to the caller
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        id          query     string  false  "Shipment id equality"
// @Param        status      query     string  false  "Status equality"  Enums(created, in_transit, delivered)
// @Param        carrier_id  query     string  false  "Assigned carrier equality"
// @Param        date_from   query     string  false  "created_at lower bound (RFC 3339)"
// @Param        date_to     query     string  false  "created_at upper bound (RFC 3339)"
// @Param        page        query     int     false  "Page (1-based)"
// @Param        limit       query     int     false  "Page size (max 100)"
// @Success      200  {object}  listShipmentsResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/shipments [get]
func (h *ShipmentHandler) List(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	input := ports.ListShipmentsInput{
		ShipmentID: c.QueryParam("id"),
		Status:     c.QueryParam("status"),
		CarrierID:  c.QueryParam("carrier_id"),
		Page:       atoiOrZero(c.QueryParam("page")),
		Limit:      atoiOrZero(c.QueryParam("limit")),
	}
	if input.DateFrom, err = parseDate(c.QueryParam("date_from")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_from must be RFC 3339")
	}
	if input.DateTo, err = parseDate(c.QueryParam("date_to")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date_to must be RFC 3339")
	}

	result, err := h.service.ListShipments(c.Request().Context(), requester, input)
	if err != nil {
		return err
	}

	data := make([]shipmentResponse, 0, len(result.Items))
	for _, s := range result.Items {
		data = append(data, toShipmentResponse(s))
	}

	return c.JSON(http.StatusOK, listShipmentsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// MarkInTransit handles POST /v1/shipments/:id/transit.
//
// @Summary      Move a created shipment to in_transit
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shipment id"
// @Success      200  {object}  shipmentResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/shipments/{id}/transit [post]
func (h *ShipmentHandler) MarkInTransit(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	shipment, err := h.service.MarkInTransit(c.Request().Context(), requester, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(string(shipment.Status)).Inc()
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// MarkDelivered handles POST /v1/shipments/:id/delivered.
//
// @Summary      Move an in_transit shipment to delivered
// @Tags         shipments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Shipment id"
// @Success      200  {object}  shipmentResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/shipments/{id}/delivered [post]
func (h *ShipmentHandler) MarkDelivered(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	shipment, err := h.service.MarkDelivered(c.Request().Context(), requester, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.TransitionsTotal.WithLabelValues(string(shipment.Status)).Inc()
	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

// UpdateLocation handles PUT /v1/shipments/:id/location.
//
// @Summary      Update the current location of an in_transit shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Shipment id"
// @Param        body  body      updateLocationRequest  true  "New location"
// @Success      200   {object}  shipmentResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/shipments/{id}/location [put]
func (h *ShipmentHandler) UpdateLocation(c echo.Context) error {
	requester, err := ctxRequester(c)
	if err != nil {
		return err
	}

	var req updateLocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shipment, err := h.service.UpdateLocation(c.Request().Context(), requester, c.Param("id"), req.Location)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toShipmentResponse(shipment))
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
