package domain

import (
	"time"

	"github.com/google/uuid"
)

type Poll struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descripcion,omitempty"`
	Options     []string  `json:"opciones"`
	EndTime     time.Time `json:"fecha_fin"`
	Active      bool      `json:"activa"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AcceptsVote checks whether a vote for the given option can be recorded
// at the given instant. The poll must be active, inside its voting window,
// and the option must belong to the poll's declared set.
func (p *Poll) AcceptsVote(option string, now time.Time) error {
	if !p.Active {
		return ErrPollInactive
	}
	if now.After(p.EndTime) {
		return ErrPollClosed
	}
	if !p.HasOption(option) {
		return ErrInvalidOption
	}
	return nil
}

func (p *Poll) HasOption(option string) bool {
	for _, opt := range p.Options {
		if opt == option {
			return true
		}
	}
	return false
}
