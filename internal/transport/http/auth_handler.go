package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ininsico/voyago-api/internal/service"
	"github.com/ininsico/voyago-api/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	group := e.Group("/api/auth")
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/google", handler.loginWithGoogle)

	me := group.Group("", RequireAuth(auth))
	me.GET("/me", handler.me)
	me.PUT("/profile", handler.updateProfile)
	me.POST("/upload-avatar", handler.uploadAvatar)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req struct {
		FirstName string  `json:"first_name"`
		LastName  *string `json:"last_name"`
		Email     string  `json:"email"`
		Password  string  `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	result, err := h.auth.Register(c.Request().Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		return h.writeAuthError(c, err)
	}
	return c.JSON(http.StatusCreated, util.OK("user", result.User).
		With("token", result.Token).
		With("expires_at", result.ExpiresAt))
}

func (h *AuthHandler) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("user", result.User).
		With("token", result.Token).
		With("expires_at", result.ExpiresAt))
}

func (h *AuthHandler) loginWithGoogle(c echo.Context) error {
	var req struct {
		IDToken string `json:"id_token"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	result, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return h.writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("user", result.User).
		With("token", result.Token).
		With("expires_at", result.ExpiresAt))
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
	}
	return c.JSON(http.StatusOK, util.OK("user", user))
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	updated, err := h.auth.UpdateProfile(c.Request().Context(), user.ID, req.FirstName, req.LastName)
	if err != nil {
		return h.writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("user", updated))
}

func (h *AuthHandler) uploadAvatar(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Fail("authentication required"))
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

	updated, err := h.auth.UploadAvatar(c.Request().Context(), user.ID, service.AvatarUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return h.writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, util.OK("user", updated))
}

func (h *AuthHandler) writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrAuthValidation),
		errors.Is(err, service.ErrPasswordTooWeak),
		errors.Is(err, service.ErrAvatarTooLarge),
		errors.Is(err, service.ErrAvatarUnsupportedType):
		return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidGoogleToken),
		errors.Is(err, service.ErrTokenInvalid):
		return c.JSON(http.StatusUnauthorized, util.Fail(err.Error()))
	case errors.Is(err, service.ErrEmailAlreadyUsed):
		return c.JSON(http.StatusConflict, util.Fail(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.Fail(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Fail("internal error"))
	}
}
