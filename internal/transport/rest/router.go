package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/docvault/docvault/internal/auth"
	"github.com/docvault/docvault/internal/document"
	"github.com/docvault/docvault/internal/group"
	"github.com/docvault/docvault/internal/membership"
	"github.com/docvault/docvault/internal/permit"
	"github.com/docvault/docvault/internal/transport/middleware"
	"github.com/docvault/docvault/internal/transport/swagger"
	"github.com/docvault/docvault/internal/user"
)

// Handlers bundles the per-entity HTTP handlers the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	Users       *user.Handler
	Groups      *group.Handler
	Memberships *membership.Handler
	Permits     *permit.Handler
	Documents   *document.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))

	// OpenAPI spec and Swagger UI at the root, outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Post("/sessions", h.Auth.Login)

		// Everything below requires a verified session; the services
		// enforce the finer-grained rules themselves.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.Middleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Post("/", h.Users.Create)
				ur.Get("/", h.Users.List)
				ur.Get("/{id}", h.Users.Get)
				ur.Put("/{id}", h.Users.Update)
				ur.Put("/{id}/password", h.Users.UpdatePassword)
				ur.Delete("/{id}", h.Users.Delete)
				ur.Get("/{userId}/memberships", h.Memberships.ListByUser)
				ur.Delete("/{userId}/memberships", h.Memberships.DeleteByUser)
			})

			pr.Route("/groups", func(gr chi.Router) {
				gr.Post("/", h.Groups.Create)
				gr.Get("/", h.Groups.List)
				gr.Get("/{id}", h.Groups.Get)
				gr.Put("/{id}", h.Groups.Update)
				gr.Delete("/{id}", h.Groups.Delete)
				gr.Get("/{groupId}/memberships", h.Memberships.ListByGroup)
				gr.Delete("/{groupId}/memberships", h.Memberships.DeleteByGroup)
				gr.Delete("/{groupId}/permits", h.Permits.DeleteByGroup)
			})

			pr.Route("/memberships", func(mr chi.Router) {
				mr.Post("/", h.Memberships.Create)
				mr.Get("/", h.Memberships.List)
				mr.Delete("/{id}", h.Memberships.Delete)
			})

			pr.Route("/permits", func(per chi.Router) {
				per.Post("/", h.Permits.Create)
				per.Get("/", h.Permits.List)
				per.Get("/{id}", h.Permits.Get)
				per.Delete("/{id}", h.Permits.Delete)
			})

			pr.Route("/documents", func(dr chi.Router) {
				dr.Post("/", h.Documents.Create)
				dr.Get("/", h.Documents.List)
				dr.Get("/{id}", h.Documents.Get)
				dr.Put("/{id}", h.Documents.Update)
				dr.Delete("/{id}", h.Documents.Delete)
				dr.Delete("/{documentId}/permits", h.Permits.DeleteByDocument)
			})
		})
	})
}
