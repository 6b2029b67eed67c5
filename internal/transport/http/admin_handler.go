package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/service"
	"github.com/ininsico/voyago-api/internal/util"
)

type AdminHandler struct {
	auth     *service.AuthService
	bookings *service.BookingService
	stats    *service.StatsService
}

// RegisterAdmin wires the dashboard surface: the stats rollup and the
// cross-user booking and user management routes.
func RegisterAdmin(e *echo.Echo, auth *service.AuthService, bookings *service.BookingService, stats *service.StatsService) {
	handler := &AdminHandler{auth: auth, bookings: bookings, stats: stats}

	admin := e.Group("/api/admin", RequireAuth(auth), RequireAdmin())
	admin.GET("/stats", handler.overview)
	admin.GET("/bookings", handler.listBookings)
	admin.PUT("/bookings/:id", handler.updateBooking)
	admin.DELETE("/bookings/:id", handler.deleteBooking)
	admin.GET("/users", handler.listUsers)
	admin.DELETE("/users/:id", handler.deleteUser)
}

func (h *AdminHandler) overview(c echo.Context) error {
	stats, err := h.stats.Overview(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to load stats"))
	}
	return c.JSON(http.StatusOK, util.OK("stats", stats))
}

func (h *AdminHandler) listBookings(c echo.Context) error {
	bookings, err := h.bookings.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to list bookings"))
	}
	return c.JSON(http.StatusOK, util.OK("bookings", bookings).
		With("count", len(bookings)))
}

func (h *AdminHandler) updateBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid booking id"))
	}
	var patch domain.BookingPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}
	booking, err := h.bookings.AdminUpdate(c.Request().Context(), id, patch)
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("booking", booking))
}

func (h *AdminHandler) deleteBooking(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid booking id"))
	}
	if err := h.bookings.AdminDelete(c.Request().Context(), id); err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("booking deleted"))
}

func (h *AdminHandler) listUsers(c echo.Context) error {
	limit, offset := 0, 0
	if v := strings.TrimSpace(c.QueryParam("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := strings.TrimSpace(c.QueryParam("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	users, err := h.auth.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to list users"))
	}
	return c.JSON(http.StatusOK, util.OK("users", users).
		With("count", len(users)))
}

func (h *AdminHandler) deleteUser(c echo.Context) error {
	admin, ok := CurrentUser(c)
	if !ok || admin == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid user id"))
	}
	if err := h.auth.DeleteUser(c.Request().Context(), admin.ID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete):
			return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Fail(err.Error()))
		default:
			return c.JSON(http.StatusInternalServerError, util.Fail("internal error"))
		}
	}
	return c.JSON(http.StatusOK, util.Message("user deleted"))
}
