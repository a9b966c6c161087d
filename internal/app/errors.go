package app

import (
	"net/http"

	"github.com/molpadia/ytmusic-gateway/internal/domain/entity"
)

// AppError is an error reported to the client with the given status code.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Status codes of catalog fault kinds.
var faultStatus = map[entity.Kind]int{
	entity.KindInvalid:     http.StatusBadRequest,
	entity.KindNotFound:    http.StatusNotFound,
	entity.KindUnavailable: http.StatusBadGateway,
	entity.KindInternal:    http.StatusInternalServerError,
}
