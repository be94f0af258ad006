package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "github.com/a-shrinked-org/plato-unchained/errors"
	"github.com/a-shrinked-org/plato-unchained/internal/adapter/dto/common"
	"github.com/a-shrinked-org/plato-unchained/internal/domain/entities"
)

// respondAppError writes an AppError as the standard error envelope.
func respondAppError(c echo.Context, appErr apperrors.AppError) error {
	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Code:    appErr.Code.String(),
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// respondError maps domain errors onto the HTTP error taxonomy.
func respondError(c echo.Context, err error, source string) error {
	var appErr apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		// already classified
	case errors.Is(err, entities.ErrEmptyTranscript):
		appErr = apperrors.ErrEmptyTranscript(source)
	case errors.Is(err, entities.ErrUnknownModel):
		appErr = apperrors.ErrUnknownModel(errDetail(err))
	case errors.Is(err, entities.ErrAllChunksFailed):
		appErr = apperrors.ErrAllChunksFailed(err)
	case errors.Is(err, entities.ErrDocNotFound):
		appErr = apperrors.ErrNotFound("document")
	case errors.Is(err, entities.ErrRunNotFound):
		appErr = apperrors.ErrNotFound("pipeline run")
	case errors.Is(err, entities.ErrInvalidRequest):
		appErr = apperrors.ErrInvalidArgument(err.Error())
	default:
		appErr = apperrors.ErrInternal(err)
	}
	return respondAppError(c, appErr)
}

// errDetail trims the sentinel prefix off wrapped errors for detail fields.
func errDetail(err error) string {
	return err.Error()
}

// respondBadRequest writes a 400 for malformed request bodies.
func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, common.ErrorResponse{
		Code:    apperrors.ErrorCode_INVALID_ARGUMENT.String(),
		Message: message,
	})
}
