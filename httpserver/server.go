package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"cinelist/errs"
	"cinelist/favorite"
	"cinelist/movie"
	"cinelist/pkg/config"
	"cinelist/pkg/sentry"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	FavoriteService favorite.Service

	MovieService movie.Service
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
	}

	if cfg.AllowOrigins != "" {
		s.AllowOrigins = strings.Split(cfg.AllowOrigins, ",")
	}

	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")
	s.RegisterMovieRoutes(api)
	s.RegisterFavoriteRoutes(api)
	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// handleError maps application errors to HTTP status codes and the uniform
// response envelope. Nothing below the boundary writes responses itself.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var ve *ValidationError
	var writeErr error

	switch {
	case errors.As(err, &ve):
		writeErr = writeError(c, http.StatusUnprocessableEntity, ve.Message, ve.Fields)
	default:
		code, message := statusFor(err)
		if code >= http.StatusInternalServerError {
			slog.Error("request failed",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"query", c.Request().URL.RawQuery,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			sentry.WithContext(c).Error(err)
		}
		writeErr = writeError(c, code, message, nil)
	}

	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}

func statusFor(err error) (int, string) {
	if he, ok := err.(*echo.HTTPError); ok {
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}

	// Forward-compat conflict mapping inherited from the previous
	// implementation: the add path never produces this message today.
	if strings.Contains(errs.ErrorMessage(err), "already in your list") {
		return http.StatusConflict, errs.ErrorMessage(err)
	}

	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusUnprocessableEntity, errs.ErrorMessage(err)
	case errs.ENOTFOUND:
		return http.StatusNotFound, errs.ErrorMessage(err)
	case errs.ECONFLICT:
		return http.StatusConflict, errs.ErrorMessage(err)
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized, errs.ErrorMessage(err)
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented, errs.ErrorMessage(err)
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
