package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

type createPollRequest struct {
	Titulo      string   `json:"titulo"`
	Descripcion string   `json:"descripcion"`
	Opciones    []string `json:"opciones"`
	FechaFin    string   `json:"fecha_fin"`
}

type updatePollRequest struct {
	Titulo      string `json:"titulo"`
	Descripcion string `json:"descripcion"`
	FechaFin    string `json:"fecha_fin"`
	Activa      bool   `json:"activa"`
}

type listPollsResponse struct {
	Votaciones []*domain.Poll `json:"votaciones"`
	Total      int            `json:"total"`
}

type pollResponse struct {
	Message  string       `json:"message"`
	Votacion *domain.Poll `json:"votacion"`
}

func (h *PollHandler) List(w http.ResponseWriter, r *http.Request) {
	polls, err := h.service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if polls == nil {
		polls = []*domain.Poll{}
	}

	writeJSON(w, http.StatusOK, listPollsResponse{Votaciones: polls, Total: len(polls)})
}

func (h *PollHandler) Get(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.GetWithResults(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

func (h *PollHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid data", "the request body is not valid JSON")
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", "authentication is required")
		return
	}

	input := ports.CreatePollInput{
		Title:       req.Titulo,
		Description: req.Descripcion,
		Options:     req.Opciones,
		EndTime:     req.FechaFin,
	}

	poll, err := h.service.Create(r.Context(), principal, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, pollResponse{Message: "poll created successfully", Votacion: poll})
}

func (h *PollHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid data", "the request body is not valid JSON")
		return
	}

	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", "authentication is required")
		return
	}

	input := ports.UpdatePollInput{
		Title:       req.Titulo,
		Description: req.Descripcion,
		EndTime:     req.FechaFin,
		Active:      req.Activa,
	}

	poll, err := h.service.Update(r.Context(), principal, chi.URLParam(r, "id"), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pollResponse{Message: "poll updated successfully", Votacion: poll})
}

func (h *PollHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated", "authentication is required")
		return
	}

	if err := h.service.Delete(r.Context(), principal, chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "poll deleted successfully"})
}
