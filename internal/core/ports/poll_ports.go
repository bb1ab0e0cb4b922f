package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
)

type PollRepository interface {
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error)
	// GetAll returns every poll ordered by creation time, newest first.
	GetAll(ctx context.Context) ([]*domain.Poll, error)
	// Update rewrites title, description, end time and active flag.
	// Declared options are fixed at creation and never touched.
	Update(ctx context.Context, poll *domain.Poll) (*domain.Poll, error)
	// Delete removes the poll and all its votes in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreatePollInput struct {
	Title       string
	Description string
	Options     []string
	EndTime     string
}

type UpdatePollInput struct {
	Title       string
	Description string
	EndTime     string
	Active      bool
}

type PollService interface {
	List(ctx context.Context) ([]*domain.Poll, error)
	GetWithResults(ctx context.Context, id string) (*domain.PollResults, error)
	Create(ctx context.Context, principal domain.Principal, input CreatePollInput) (*domain.Poll, error)
	Update(ctx context.Context, principal domain.Principal, id string, input UpdatePollInput) (*domain.Poll, error)
	Delete(ctx context.Context, principal domain.Principal, id string) error
}
