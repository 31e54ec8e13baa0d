package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"prepcenter/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// retryAfterSeconds is sent with every 503 so clients back off before retrying.
const retryAfterSeconds = "1"

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindUnauthenticated, errs.KindForbidden:
		return http.StatusUnauthorized
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindInvalidTransition, errs.KindCapacityExceeded, errs.KindConflict:
		return http.StatusConflict
	case errs.KindTransientStore:
		return http.StatusServiceUnavailable
	case errs.KindUnknown:
	}
	return http.StatusInternalServerError
}

// statusFor is the status NewErrorHandler will write for err.
func statusFor(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return statusOf(errs.KindOf(err))
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return errs.KindValidation.String()
	case http.StatusUnauthorized:
		return errs.KindUnauthenticated.String()
	case http.StatusNotFound:
		return errs.KindNotFound.String()
	}
	return http.StatusText(code)
}

func errorBody(err error) Error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return Error{Code: he.Code, Kind: kindForStatus(he.Code), Message: fmt.Sprint(he.Message)}
	}
	kind := errs.KindOf(err)
	code := statusOf(kind)
	if kind == errs.KindUnknown {
		return Error{Code: code, Kind: kind.String(), Message: http.StatusText(code)}
	}
	return Error{Code: code, Kind: kind.String(), Message: err.Error()}
}

// NewErrorHandler renders handler and middleware errors as Error bodies. Errors of
// unknown kind are logged and reported without their message.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		req := c.Request()
		body := errorBody(err)
		switch {
		case body.Code == http.StatusServiceUnavailable:
			c.Response().Header().Set(echo.HeaderRetryAfter, retryAfterSeconds)
			logger.WarnContext(req.Context(), "store unavailable", "method", req.Method, "route", c.Path(), "error", err)
		case body.Code >= http.StatusInternalServerError:
			logger.ErrorContext(req.Context(), "request failed", "method", req.Method, "route", c.Path(), "error", err)
		}

		var writeErr error
		if req.Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.ErrorContext(req.Context(), "write error response", "error", writeErr)
		}
	}
}
