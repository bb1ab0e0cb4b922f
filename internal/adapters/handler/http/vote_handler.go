package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/ports"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type castVoteRequest struct {
	Opcion string `json:"opcion"`
}

type voteBody struct {
	ID     uuid.UUID `json:"id"`
	Opcion string    `json:"opcion"`
	Fecha  time.Time `json:"fecha"`
}

type castVoteResponse struct {
	Message string   `json:"message"`
	Voto    voteBody `json:"voto"`
}

func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid data", "the request body is not valid JSON")
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", "authentication is required")
		return
	}

	input := ports.CastVoteInput{
		PollID: chi.URLParam(r, "id"),
		Option: req.Opcion,
	}

	vote, err := h.service.Cast(r.Context(), principal, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, castVoteResponse{
		Message: "vote registered successfully",
		Voto: voteBody{
			ID:     vote.ID,
			Opcion: vote.Option,
			Fecha:  vote.CreatedAt,
		},
	})
}

func (h *VoteHandler) MyVote(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", "authentication is required")
		return
	}

	vote, err := h.service.FindMine(r.Context(), principal, chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, voteBody{
		ID:     vote.ID,
		Opcion: vote.Option,
		Fecha:  vote.CreatedAt,
	})
}
