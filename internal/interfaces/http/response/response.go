package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "stream-ledger.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Domain sentinels map to distinct codes
// so client UIs can tell "top up" from "try again later"; anything
// unrecognized becomes a 500 with no storage detail exposed.
func Error(c *gin.Context, err error) {
	appErr := fromDomain(err)
	body := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}

	var insufficient *domainerrors.InsufficientFundsError
	if errors.As(err, &insufficient) {
		body["required"] = insufficient.Required
		body["available"] = insufficient.Available
	}
	var belowMin *domainerrors.BelowMinimumError
	if errors.As(err, &belowMin) {
		body["minimum"] = belowMin.Minimum
		body["requested"] = belowMin.Requested
	}

	c.JSON(appErr.Status, body)
}

func fromDomain(err error) *domainerrors.AppError {
	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domainerrors.ErrInsufficientFunds):
		return domainerrors.NewAppError(http.StatusPaymentRequired, "ERR_INSUFFICIENT_FUNDS", err.Error(), err)
	case errors.Is(err, domainerrors.ErrAlreadyOwner):
		return domainerrors.NewAppError(http.StatusBadRequest, "ERR_ALREADY_OWNER", err.Error(), err)
	case errors.Is(err, domainerrors.ErrBelowMinimum):
		return domainerrors.NewAppError(http.StatusBadRequest, "ERR_BELOW_MINIMUM", err.Error(), err)
	case errors.Is(err, domainerrors.ErrDuplicatePending):
		return domainerrors.NewAppError(http.StatusConflict, "ERR_DUPLICATE_PENDING", err.Error(), err)
	case errors.Is(err, domainerrors.ErrNotPending):
		return domainerrors.NewAppError(http.StatusConflict, "ERR_NOT_PENDING", err.Error(), err)
	case errors.Is(err, domainerrors.ErrNotFound):
		return domainerrors.NotFound("resource not found")
	case errors.Is(err, domainerrors.ErrAlreadyExists):
		return domainerrors.Conflict(err.Error())
	case errors.Is(err, domainerrors.ErrInvalidInput):
		return domainerrors.BadRequest(err.Error())
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return domainerrors.Unauthorized(err.Error())
	case errors.Is(err, domainerrors.ErrForbidden):
		return domainerrors.Forbidden(err.Error())
	default:
		return domainerrors.InternalError(err)
	}
}
