package http

import (
	"errors"
	"net/http"

	"climasite/internal/core/domain/model/order"
	"climasite/internal/core/ports"
	"climasite/internal/generated/servers"
	"climasite/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps application errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errs.IsInvalidArgument(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, ports.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{
		Code:    code,
		Message: message,
	})
}

// respondWithError writes err as an Error body. Internal failures are not
// described to the caller.
func (s *Server) respondWithError(ctx echo.Context, err error, fallback string) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), fallback,
			"method", ctx.Request().Method, "path", ctx.Path(), "error", err)
		return writeError(ctx, code, fallback)
	}
	return writeError(ctx, code, err.Error())
}

// HTTPErrorHandler renders errors escaping the handlers, such as echo's own
// routing and binding errors, in the API's Error shape.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = writeError(ctx, code, message)
}
