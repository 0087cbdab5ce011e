package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/loopdesk/chat-api/internal/api/metrics"
	"github.com/loopdesk/chat-api/internal/core/domain"
	"github.com/loopdesk/chat-api/internal/core/ports"
)

// MessageHandler handles the ownership-gated message endpoints. All routes it
// serves sit behind the auth guard, so CurrentUser is always resolvable.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /messages.
//
// @Summary      List the caller's messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	messages, err := h.service.List(c.Request().Context(), user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toMessageResponses(messages))
}

// Create handles POST /messages. Returns the stored user message and the
// generated bot reply, in creation order.
//
// @Summary      Post a message and receive the bot reply
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMessageRequest  true  "Message content"
// @Success      200   {array}   messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /messages [post]
func (h *MessageHandler) Create(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userMsg, botMsg, err := h.service.Create(c.Request().Context(), user, req.Content)
	if err != nil {
		return err
	}

	metrics.MessagesCreatedTotal.WithLabelValues(string(domain.SenderUser)).Inc()
	metrics.MessagesCreatedTotal.WithLabelValues(string(domain.SenderBot)).Inc()

	return c.JSON(http.StatusOK, []messageResponse{
		toMessageResponse(userMsg),
		toMessageResponse(botMsg),
	})
}

// Update handles PUT /messages/:id.
//
// @Summary      Edit a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Message id"
// @Param        body  body      updateMessageRequest  true  "New content"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /messages/{id} [put]
func (h *MessageHandler) Update(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := messageID(c)
	if err != nil {
		return err
	}

	var req updateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.Update(c.Request().Context(), user, id, req.Content)
	if err != nil {
		return err
	}

	metrics.MessagesMutatedTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toMessageResponse(updated))
}

// Delete handles DELETE /messages/:id. The record is soft-deleted and
// returned with its deletion marker set.
//
// @Summary      Soft-delete a message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      int  true  "Message id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := messageID(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.SoftDelete(c.Request().Context(), user, id)
	if err != nil {
		return err
	}

	metrics.MessagesMutatedTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, toMessageResponse(deleted))
}

// messageID parses the :id path parameter. A non-numeric id cannot reference
// any message, so it reports not found rather than a bind error.
func messageID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrMessageNotFound
	}
	return id, nil
}
