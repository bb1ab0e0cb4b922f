package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
)

type VoteRepository interface {
	// CastVote records the vote inside a single transaction: the owning
	// poll is locked for update, checked against the window/option rules
	// and the one-vote-per-user rule, then the vote row is inserted.
	// Any check failure rolls the transaction back.
	CastVote(ctx context.Context, vote *domain.Vote, now time.Time) error
	Find(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error)
	// CountByOption returns vote counts grouped by option. Options with
	// no votes are absent from the map.
	CountByOption(ctx context.Context, pollID uuid.UUID) (map[string]int64, error)
}

type CastVoteInput struct {
	PollID string
	Option string
}

type VoteService interface {
	Cast(ctx context.Context, principal domain.Principal, input CastVoteInput) (*domain.Vote, error)
	FindMine(ctx context.Context, principal domain.Principal, pollID string) (*domain.Vote, error)
}
