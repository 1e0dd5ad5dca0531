package handler

import (
	"errors"
	"net/http"

	"impactcore/internal/service"
	"impactcore/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Publisher pushes realtime events to connected clients.
type Publisher interface {
	Publish(eventType string, data interface{})
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, interface{}) {}

func orNoopPublisher(p Publisher) Publisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUnsupportedPaymentMethod):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyExists),
		errors.Is(err, service.ErrAlreadySettled):
		return http.StatusConflict
	case errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrMissingLinkedAccount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := statusFor(err)
	c.JSON(code, response.Error(code, err.Error()))
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, msg))
}

// pathUUID parses the named path parameter, replying 400 when malformed.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
