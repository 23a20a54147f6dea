package webserver

import (
	"context"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// WebServer wraps the echo instance with the application's middleware
// stack and route groups.
type WebServer struct {
	root   *echo.Echo
	secret []byte
}

func NewWebServer(secret string) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = &JsoniterSerializer{}
	e.Validator = NewDataValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency))
			return nil
		},
	}))

	e.GET("/api/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	return &WebServer{root: e, secret: []byte(secret)}
}

// Echo exposes the underlying echo instance (used in tests).
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

// PublicGroup is the unauthenticated /api group.
func (s *WebServer) PublicGroup() *echo.Group {
	return s.root.Group("/api")
}

// AdminGroup is the /api/admin group guarded by the JWT middleware.
// The login endpoint is registered outside of it.
func (s *WebServer) AdminGroup() *echo.Group {
	g := s.root.Group("/api/admin")
	g.Use(echojwt.JWT(s.secret))
	return g
}

// RootPOST registers an unauthenticated route at an absolute path.
func (s *WebServer) RootPOST(path string, h echo.HandlerFunc) {
	s.root.POST(path, h)
}

func (s *WebServer) Start(addr string) error {
	zap.S().Infof("web server listening on %s", addr)
	return s.root.Start(addr)
}

func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}
