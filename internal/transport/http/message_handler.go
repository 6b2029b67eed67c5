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

type MessageHandler struct {
	messages *service.MessageService
}

func RegisterMessages(e *echo.Echo, auth *service.AuthService, messages *service.MessageService) {
	handler := &MessageHandler{messages: messages}

	e.POST("/api/messages", handler.submit, OptionalAuth(auth))

	admin := e.Group("/api/admin/messages", RequireAuth(auth), RequireAdmin())
	admin.GET("", handler.list)
	admin.PATCH("/:id", handler.update)
	admin.DELETE("/:id", handler.delete)
}

func (h *MessageHandler) submit(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	var userID *uuid.UUID
	if user, ok := CurrentUser(c); ok && user != nil {
		userID = &user.ID
	}

	message, err := h.messages.Submit(c.Request().Context(), req.Name, req.Email, req.Subject, req.Content, userID)
	if err != nil {
		return writeMessageError(c, err)
	}
	return c.JSON(http.StatusCreated, util.OK("data", message).
		With("message", "message received"))
}

func (h *MessageHandler) list(c echo.Context) error {
	messages, err := h.messages.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Fail("unable to list messages"))
	}
	return c.JSON(http.StatusOK, util.OK("messages", messages).
		With("count", len(messages)))
}

// update handles both admin actions on a message: {"reply": "..."} stores a
// reply and flips the status to replied, {"status": "read"} marks an unread
// message read.
func (h *MessageHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid message id"))
	}
	var req struct {
		Reply  *string `json:"reply"`
		Status *string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid request body"))
	}

	switch {
	case req.Reply != nil:
		message, err := h.messages.Reply(c.Request().Context(), id, *req.Reply)
		if err != nil {
			return writeMessageError(c, err)
		}
		return c.JSON(http.StatusOK, util.OK("data", message))
	case req.Status != nil && *req.Status == string(domain.MessageStatusRead):
		message, err := h.messages.MarkRead(c.Request().Context(), id)
		if err != nil {
			return writeMessageError(c, err)
		}
		return c.JSON(http.StatusOK, util.OK("data", message))
	default:
		return c.JSON(http.StatusBadRequest, util.Fail("expected a reply or status update"))
	}
}

func (h *MessageHandler) delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Fail("invalid message id"))
	}
	if err := h.messages.Delete(c.Request().Context(), id); err != nil {
		return writeMessageError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("message deleted"))
}

func writeMessageError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrMessageValidation):
		return c.JSON(http.StatusBadRequest, util.Fail(err.Error()))
	case errors.Is(err, service.ErrMessageNotFound):
		return c.JSON(http.StatusNotFound, util.Fail(err.Error()))
	default:
		return c.JSON(http.StatusInternalServerError, util.Fail("internal error"))
	}
}
