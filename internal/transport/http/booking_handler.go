package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/service"
	"github.com/ininsico/voyago-api/internal/util"
)

type BookingHandler struct {
	bookings *service.BookingService
}

func RegisterBookings(e *echo.Echo, auth *service.AuthService, bookings *service.BookingService) {
	handler := &BookingHandler{bookings: bookings}

	group := e.Group("/api/bookings", RequireAuth(auth))
	group.POST("", handler.create)
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.PATCH("/:id/cancel", handler.cancel)
}

func (h *BookingHandler) create(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
	}

	var req struct {
		Type            domain.BookingType `json:"type"`
		TripType        domain.TripType    `json:"trip_type"`
		ItemName        string             `json:"item_name"`
		Destination     *string            `json:"destination"`
		StartDate       string             `json:"start_date"`
		EndDate         string             `json:"end_date"`
		Guests          int                `json:"guests"`
		TotalPrice      float64            `json:"total_price"`
		SpecialRequests *string            `json:"special_requests"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	booking, err := h.bookings.Create(c.Request().Context(), user.ID, service.BookingInput{
		Type:            req.Type,
		TripType:        req.TripType,
		ItemName:        req.ItemName,
		Destination:     req.Destination,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		Guests:          req.Guests,
		TotalPrice:      req.TotalPrice,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusCreated, util.OK("booking", booking))
}

func (h *BookingHandler) list(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
	}
	bookings, err := h.bookings.ListForOwner(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to list bookings"))
	}
	return c.JSON(http.StatusOK, util.OK("bookings", bookings).
		With("count", len(bookings)))
}

func (h *BookingHandler) get(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid booking id"))
	}
	booking, err := h.bookings.GetOwned(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("booking", booking))
}

func (h *BookingHandler) cancel(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid booking id"))
	}
	booking, err := h.bookings.Cancel(c.Request().Context(), user.ID, id)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("booking", booking).
		With("message", "booking cancelled"))
}

func writeBookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrBookingValidation):
		return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
	case errors.Is(err, service.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, util.Fail(err.Error()))
	case errors.Is(err, service.ErrActiveVehicleBooking):
		return c.JSON(http.StatusConflict, util.Fail(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Fail("internal error"))
	}
}
