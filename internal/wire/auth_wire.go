package wire

import (
	"fleet-dispatch/internal/adaptor"
	"fleet-dispatch/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, auth middleware.Authenticator, log *zap.Logger) {
	r.Post("/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(auth, log))
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)
		r.With(middleware.Admin(log)).Post("/auth/users", authHandler.CreateUser)
	})
}
