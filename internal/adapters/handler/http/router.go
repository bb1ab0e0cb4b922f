package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/ports"
)

func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, verifier ports.TokenVerifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/votaciones", func(r chi.Router) {
			r.Get("/", pollHandler.List)
			r.Get("/{id}", pollHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(Authenticator(verifier))

				r.Post("/{id}/votar", voteHandler.Cast)
				r.Get("/{id}/mi-voto", voteHandler.MyVote)

				r.Group(func(r chi.Router) {
					r.Use(RequireAdmin)

					r.Post("/", pollHandler.Create)
					r.Put("/{id}", pollHandler.Update)
					r.Delete("/{id}", pollHandler.Delete)
				})
			})
		})
	})

	return r
}
