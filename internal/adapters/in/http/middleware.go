package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"prepcenter/internal/core/domain/model/access"
	"prepcenter/internal/core/domain/model/kernel"
	"prepcenter/internal/core/ports"
	"prepcenter/internal/pkg/errs"
	"prepcenter/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// The identity gateway in front of the service forwards the verified principal in
// these headers.
const (
	HeaderPrincipalID   = "X-Principal-Id"
	HeaderPrincipalRole = "X-Principal-Role"
)

const principalKey = "principal"

func principalFromHeaders(h http.Header) (access.Principal, error) {
	rawID, rawRole := h.Get(HeaderPrincipalID), h.Get(HeaderPrincipalRole)
	if rawID == "" || rawRole == "" {
		return access.Principal{}, errs.NewUnauthenticatedError("missing principal headers")
	}
	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return access.Principal{}, errs.NewUnauthenticatedError(fmt.Sprintf("malformed %s", HeaderPrincipalID))
	}
	role, err := access.ParseRole(rawRole)
	if err != nil {
		return access.Principal{}, errs.NewUnauthenticatedError(fmt.Sprintf("unknown role %q", rawRole))
	}
	p, err := access.NewPrincipal(id, role)
	if err != nil {
		return access.Principal{}, errs.NewUnauthenticatedError(err.Error())
	}
	return p, nil
}

// PrincipalMiddleware rejects requests without a verified principal and records
// every principal it sees in the directory.
func PrincipalMiddleware(directory ports.PrincipalDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := principalFromHeaders(c.Request().Header)
			if err != nil {
				return err
			}
			if err := directory.Touch(c.Request().Context(), p); err != nil {
				return err
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// principalOf returns the request principal. A zero principal fails every
// constructor with Unauthenticated.
func principalOf(c echo.Context) access.Principal {
	p, _ := c.Get(principalKey).(access.Principal)
	return p
}

// OpenAPIValidator checks requests against doc before they reach a handler.
// Requests for paths doc does not describe pass through untouched.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(c)
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err))
			}
			return next(c)
		}
	}, nil
}

// validationMessage keeps the first line of a kin-openapi error; the rest is a schema dump.
func validationMessage(err error) string {
	msg, _, _ := strings.Cut(err.Error(), "\n")
	return msg
}

// MetricsMiddleware counts requests by route template and final status.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				status = statusFor(err)
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.String("route", v.RoutePath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if p := principalOf(c); p.Validate() == nil {
				attrs = append(attrs, slog.String("principal", p.String()))
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelError
				}
			}
			logger.LogAttrs(c.Request().Context(), level, "http request", attrs...)
			return nil
		},
	})
}
