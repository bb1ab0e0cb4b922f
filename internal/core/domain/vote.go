package domain

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID        uuid.UUID `json:"id"`
	PollID    uuid.UUID `json:"votacion_id"`
	UserID    uuid.UUID `json:"usuario_id"`
	Option    string    `json:"opcion"`
	CreatedAt time.Time `json:"fecha"`
}
