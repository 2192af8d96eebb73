package middleware

import (
	"net/http"
	"time"

	"epicontrol/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var erroInterno = apierror.Com(apierror.CodigoInterno, "Erro interno do servidor")

// requestLogger returns the global logger enriched with the request id and,
// when authenticated, the acting login.
func requestLogger(c *gin.Context) zerolog.Logger {
	ctx := log.With().Str("request_id", c.GetString(RequestIDKey))
	if claims := GetClaims(c); claims != nil {
		ctx = ctx.Str("login", claims.Login)
	}
	return ctx.Logger()
}

// ErrorHandler answers 500 for errors handlers pushed with c.Error.
// Domain errors never get here; respondError writes them directly.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}

		l := requestLogger(c)
		for _, e := range c.Errors {
			l.Error().Err(e.Err).Str("route", c.FullPath()).Str("method", c.Request.Method).Msg("erro não tratado")
		}
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, erroInterno)
		}
	}
}

// Recovery turns a panic into a 500 and logs it with the request id.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l := requestLogger(c)
				l.Error().Interface("panic", r).Str("route", c.FullPath()).Msg("panic recuperado")
				c.AbortWithStatusJSON(http.StatusInternalServerError, erroInterno)
			}
		}()
		c.Next()
	}
}

// Logger writes one line per request: info for 2xx/3xx, warn for 4xx and
// error for 5xx.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		status := c.Writer.Status()
		l := requestLogger(c)
		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = l.Error()
		case status >= http.StatusBadRequest:
			ev = l.Warn()
		default:
			ev = l.Info()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(inicio)).
			Msg("request")
	}
}
