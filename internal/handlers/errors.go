package handlers

import (
	"errors"
	"net/http"

	"doneUI/internal/logger"
	"doneUI/internal/service"

	"go.uber.org/zap"
)

func asBusinessError(err error) (*service.BusinessError, bool) {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		return businessErr, true
	}
	return nil, false
}

func handleBusinessError(w http.ResponseWriter, err error) bool {
	businessErr, ok := asBusinessError(err)
	if !ok {
		return false
	}
	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Int("http_status", statusCode))

	responseWithJSON(w, statusCode,
		toPayload("error", businessErr.Code),
		toPayload("message", businessErr.Message),
		toPayload("details", businessErr.Details),
	)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeTimerBusy, service.CodeTimerIdle:
		return http.StatusConflict
	case service.CodeTransport, service.CodeMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}
