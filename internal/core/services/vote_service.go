package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/ports"
)

type voteService struct {
	voteRepo ports.VoteRepository
}

func NewVoteService(voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		voteRepo: voteRepo,
	}
}

func (s *voteService) Cast(ctx context.Context, principal domain.Principal, input ports.CastVoteInput) (*domain.Vote, error) {
	if input.Option == "" {
		return nil, domain.NewValidationError("opcion", "an option is required to vote")
	}

	pollID, err := uuid.Parse(input.PollID)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	now := time.Now().UTC()
	vote := &domain.Vote{
		ID:        uuid.New(),
		PollID:    pollID,
		UserID:    principal.ID,
		Option:    input.Option,
		CreatedAt: now,
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.voteRepo.CastVote(ctx, vote, now); err != nil {
		return nil, err
	}

	return vote, nil
}

func (s *voteService) FindMine(ctx context.Context, principal domain.Principal, id string) (*domain.Vote, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return s.voteRepo.Find(ctx, pollID, principal.ID)
}
