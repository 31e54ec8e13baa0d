package http

import (
	"log/slog"
	"net/http"

	"prepcenter/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// BasePath prefixes every operation of the API.
const BasePath = "/api/v1"

type RouterConfig struct {
	Server    ServerInterface
	Directory ports.PrincipalDirectory
	Gatherer  prometheus.Gatherer
	Logger    *slog.Logger
}

// NewRouter wires the API, the health probe, the metrics endpoint and the Swagger UI.
//
//	/health         liveness, no principal
//	/metrics        Prometheus exposition, no principal
//	/swagger/*      Swagger UI over the embedded document
//	/api/v1/...     principal required, requests validated against the document
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(doc)
	if err != nil {
		return nil, err
	}
	if err := registerSwaggerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.HTTPErrorHandler = NewErrorHandler(cfg.Logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(cfg.Logger))
	e.Use(MetricsMiddleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(BasePath, PrincipalMiddleware(cfg.Directory), validator)
	RegisterHandlers(api, cfg.Server)

	return e, nil
}
