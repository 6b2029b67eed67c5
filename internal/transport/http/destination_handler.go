package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ininsico/voyago-api/internal/cache"
	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/service"
	"github.com/ininsico/voyago-api/internal/util"
)

type DestinationHandler struct {
	destinations *service.DestinationService
}

// RegisterDestinations wires the public catalog reads and the admin CRUD
// surface. Public GETs are served through the response cache; the service
// purges it on every successful mutation.
func RegisterDestinations(e *echo.Echo, auth *service.AuthService, destinations *service.DestinationService, catalogCache *cache.Store) {
	handler := &DestinationHandler{destinations: destinations}

	public := e.Group("/api/destinations")
	if catalogCache != nil {
		public.Use(CacheGET(catalogCache))
		destinations.NotifyChanges(catalogCache.Purge)
	}
	public.GET("", handler.list)
	public.GET("/:id", handler.get)

	admin := e.Group("/api/admin/destinations", RequireAuth(auth), RequireAdmin())
	admin.POST("", handler.create)
	admin.PUT("/:id", handler.update)
	admin.DELETE("/:id", handler.delete)
	admin.POST("/:id/image", handler.uploadImage)
}

func (h *DestinationHandler) list(c echo.Context) error {
	destinations, err := h.destinations.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to list destinations"))
	}
	return c.JSON(http.StatusOK, util.OK("destinations", destinations).
		With("count", len(destinations)))
}

func (h *DestinationHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid destination id"))
	}
	dest, err := h.destinations.Get(c.Request().Context(), id)
	if err != nil {
		return h.writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("destination", dest))
}

func (h *DestinationHandler) create(c echo.Context) error {
	var fields domain.DestinationFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}
	dest, err := h.destinations.Create(c.Request().Context(), fields)
	if err != nil {
		return h.writeDestinationError(c, err)
	}
	return c.JSON(http.StatusCreated, util.OK("destination", dest))
}

func (h *DestinationHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid destination id"))
	}
	var fields domain.DestinationFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}
	dest, err := h.destinations.Update(c.Request().Context(), id, fields)
	if err != nil {
		return h.writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("destination", dest))
}

func (h *DestinationHandler) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid destination id"))
	}
	if err := h.destinations.Delete(c.Request().Context(), id); err != nil {
		return h.writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("destination deleted"))
}

func (h *DestinationHandler) uploadImage(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid destination id"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("file upload required"))
	}
	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("unable to read upload"))
	}
	defer src.Close()

	dest, err := h.destinations.UploadImage(c.Request().Context(), id, service.DestinationImageUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return h.writeDestinationError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("destination", dest))
}

func (h *DestinationHandler) writeDestinationError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrDestinationValidation),
		errors.Is(err, service.ErrImageTooLarge),
		errors.Is(err, service.ErrImageUnsupportedType):
		return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
	case errors.Is(err, service.ErrDestinationNotFound):
		return c.JSON(http.StatusNotFound, util.Fail(err.Error()))
	case errors.Is(err, service.ErrDestinationNameTaken):
		return c.JSON(http.StatusConflict, util.Fail(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Fail("internal error"))
	}
}
