package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, title, message string) {
	writeJSON(w, status, errorResponse{Error: title, Message: message})
}

// respondError maps service error kinds to status codes with stable
// messages; storage details never reach the client.
func respondError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, "invalid data", validationErr.Error())
	case errors.Is(err, domain.ErrInvalidPollID):
		writeError(w, http.StatusBadRequest, "invalid poll id", "the poll id is not valid")
	case errors.Is(err, domain.ErrPollNotFound):
		writeError(w, http.StatusNotFound, "poll not found", "the requested poll does not exist")
	case errors.Is(err, domain.ErrPollInactive):
		writeError(w, http.StatusBadRequest, "poll inactive", "this poll is no longer active")
	case errors.Is(err, domain.ErrPollClosed):
		writeError(w, http.StatusBadRequest, "poll closed", "the voting period has ended")
	case errors.Is(err, domain.ErrInvalidOption):
		writeError(w, http.StatusBadRequest, "invalid option", "the selected option is not valid")
	case errors.Is(err, domain.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, "already voted", "you have already voted on this poll")
	case errors.Is(err, domain.ErrVoteNotFound):
		writeError(w, http.StatusNotFound, "vote not found", "you have not voted on this poll")
	case errors.Is(err, domain.ErrConstraintViolation):
		writeError(w, http.StatusConflict, "conflict", "the operation conflicted with a concurrent change")
	case errors.Is(err, domain.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable", "the operation could not be completed, retry the request")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error", "an unexpected error occurred")
	}
}
