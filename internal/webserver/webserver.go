// Package webserver hosts the HTTP surface: echo bootstrap, request logging,
// and the JWT gate for identity-scoped routes.
package webserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/pprof"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// Server wraps the echo instance.
type Server struct {
	echo *echo.Echo
}

func New() *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger())
	return &Server{echo: e}
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// MountFiles serves uploaded objects from root under /files.
func (s *Server) MountFiles(root string) {
	s.echo.Static("/files", root)
}

// MountDebug exposes the runtime profiles under /debug/pprof. Off unless the
// deployment opts in.
func (s *Server) MountDebug() {
	pprof.Register(s.echo)
}

func (s *Server) Start(listen string) error {
	zap.L().Info("web server listening", zap.String("listen", listen))
	return s.echo.Start(listen)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// JwtGate returns the middleware protecting identity-scoped routes. Tokens are
// accepted from the Authorization header or, for websocket clients that cannot
// set headers, a token query parameter.
func JwtGate(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  secret,
		TokenLookup: "header:Authorization:Bearer ,query:token",
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		},
	})
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return err
		}
	}
}
