package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/projecthub/projects-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that performs the
// single exhaustive error mapping for the whole API:
//   - Typed domain errors map to their documented status and problem body.
//   - Echo's own errors (router 404, method 405, bind failures) are
//     normalized into the same problem shape.
//   - Anything else is logged with the request id and rendered as a
//     generic 500 without leaking internals.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		problem := resolveProblem(err, log, c)
		if problem.Status == http.StatusTooManyRequests {
			if retry, ok := problem.Properties["retryAfterSeconds"].(int64); ok {
				c.Response().Header().Set("X-Rate-Limit-Retry-After-Seconds", strconv.FormatInt(retry, 10))
			}
		}
		_ = c.JSON(problem.Status, problem)
	}
}

func resolveProblem(err error, log zerolog.Logger, c echo.Context) *ProblemDetail {
	instance := c.Request().URL.Path

	var de *domain.Error
	if errors.As(err, &de) {
		if de.Kind == domain.KindInternal {
			logInternal(log, err, c)
		}
		status, title := statusTitle(de.Kind)
		problem := NewProblemDetail(title, status, de.Detail, instance)
		if len(de.Fields) > 0 {
			problem.SetProperty("validationErrors", de.Fields)
		}
		if de.Kind == domain.KindRateLimited {
			problem.SetProperty("retryAfterSeconds", de.RetryAfter)
		}
		return problem
	}

	// Echo errors: router 404/405, oversized bodies, bind failures.
	var he *echo.HTTPError
	if errors.As(err, &he) {
		title := http.StatusText(he.Code)
		if he.Code >= http.StatusInternalServerError {
			logInternal(log, err, c)
			return NewProblemDetail("Internal server error", he.Code, "An unexpected error occurred", instance)
		}
		return NewProblemDetail(title, he.Code, fmt.Sprintf("%v", he.Message), instance)
	}

	logInternal(log, err, c)
	return NewProblemDetail("Internal server error", http.StatusInternalServerError,
		"An unexpected error occurred", instance)
}

func logInternal(log zerolog.Logger, err error, c echo.Context) {
	log.Error().
		Err(err).
		Str("request_id", requestID(c)).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
