package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hotelos/shared/constant"
	"hotelos/shared/failure"
	"hotelos/shared/logger"
)

const internalErrorMessage = "internal server error"

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	writeJSON(writer, code, Message{Message: &message})
}

// WithJSON wraps payload in the {"data": ...} envelope.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	writeJSON(writer, code, Data[any]{Data: &payload})
}

// WithError maps err to its failure status and sends the Failure message
// alone, without the wrap prefixes. Messages of unclassified errors are
// logged and replaced, so driver and query text never reach the client.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	message := failure.GetMessage(err)

	if code >= http.StatusInternalServerError && !failure.IsFailure(err) {
		logger.ErrorWithStack(err)

		message = internalErrorMessage
	}

	writeJSON(writer, code, Error{Error: &message})
}

// WithDocument sends body inline, e.g. a rendered invoice.
func WithDocument(writer http.ResponseWriter, contentType, fileName string, body []byte) {
	writer.Header().Set(constant.ResponseHeaderContentDisposition, fmt.Sprintf("inline; filename=%q", fileName))
	write(writer, http.StatusOK, contentType, body)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func writeJSON(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		http.Error(writer, internalErrorMessage, http.StatusInternalServerError)

		return
	}

	write(writer, code, constant.ContentTypeJSON, body)
}

func write(writer http.ResponseWriter, code int, contentType string, body []byte) {
	writer.Header().Set(constant.RequestHeaderContentType, contentType)
	writer.WriteHeader(code)

	if _, err := writer.Write(body); err != nil {
		logger.ErrorWithStack(err)
	}
}
