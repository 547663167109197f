package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(h.withLogging)
	router.Use(h.withIdentity)

	// routes for anonymous callers
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// routes requiring a resolved, authenticated identity
	router.Group(func(r chi.Router) {
		r.Use(h.requireIdentity)
		r.Get("/api/user", h.getUser)
		r.Post("/api/user/password", h.changePassword)
		r.Post("/api/user/sessions/revoke", h.revokeOtherSessions)
	})

	// logout works for any caller: it tears down whatever session the
	// request presents
	router.Post("/api/user/logout", h.logout)

	// flash notices are consumed by whoever asks next
	router.Get("/api/flash", h.getFlash)

	return router
}
