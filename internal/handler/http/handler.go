// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Identity resolution, logging, cookie handling, and
// error mapping concerns are all handled at this layer before requests are
// forwarded to the service layer.
package http

import (
	"time"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/service"
	"github.com/MKhiriev/go-session-keeper/internal/session"
)

// Handler carries the dependencies shared by all HTTP route handlers.
type Handler struct {
	services *service.Services
	sessions session.Manager
	flash    *session.FlashCodec

	// secureCookies marks both cookies Secure; set in production.
	secureCookies bool
	// requestTimeout bounds a single inbound request.
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler constructs the HTTP handler set.
func NewHandler(services *service.Services, sessions session.Manager, flash *session.FlashCodec, secureCookies bool, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		sessions:       sessions,
		flash:          flash,
		secureCookies:  secureCookies,
		requestTimeout: requestTimeout,
		logger:         logger,
	}
}
