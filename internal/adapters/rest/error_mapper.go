package rest

import (
	"errors"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"net/http"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidPropertyInput, http.StatusBadRequest},
	{domain.ErrNoFieldsToUpdate, http.StatusBadRequest},
	{domain.ErrInvalidFilter, http.StatusBadRequest},
	{domain.ErrInvalidLoanInput, http.StatusBadRequest},
	{domain.ErrInvalidValuationInput, http.StatusBadRequest},
	{domain.ErrInvalidUserInput, http.StatusBadRequest},
	{domain.ErrEmptyInquiry, http.StatusBadRequest},
	{domain.ErrEmptyChatMessage, http.StatusBadRequest},

	{domain.ErrInvalidCredentials, http.StatusUnauthorized},

	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrTokenInvalid, http.StatusForbidden},

	{domain.ErrPropertyNotFound, http.StatusNotFound},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrFavoriteNotFound, http.StatusNotFound},

	{domain.ErrEmailInUse, http.StatusConflict},
	{domain.ErrAlreadyFavorited, http.StatusConflict},
}

// statusForError возвращает HTTP-статус для доменной ошибки, 500 для всего остального.
func statusForError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeUseCaseError логирует ошибку use case и отправляет клиенту подходящий ответ.
// Текст внутренних ошибок наружу не отдается.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error, internalMessage string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Use case failed with an unexpected error", err, nil)
		WriteJSONError(w, status, internalMessage)
		return
	}
	logger.Warn("Request rejected", port.Fields{"error": err.Error(), "status_code": status})
	WriteJSONError(w, status, err.Error())
}
