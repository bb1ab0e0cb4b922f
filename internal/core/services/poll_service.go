package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/ports"
)

// opTimeout bounds every storage operation so a stuck transaction rolls
// back and surfaces as a retryable error instead of hanging the caller.
const opTimeout = 5 * time.Second

type pollService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
}

func NewPollService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository) ports.PollService {
	return &pollService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
	}
}

func (s *pollService) List(ctx context.Context) ([]*domain.Poll, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return s.pollRepo.GetAll(ctx)
}

func (s *pollService) GetWithResults(ctx context.Context, id string) (*domain.PollResults, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	poll, err := s.pollRepo.GetByID(ctx, pollID)
	if err != nil {
		return nil, err
	}

	counts, err := s.voteRepo.CountByOption(ctx, pollID)
	if err != nil {
		return nil, err
	}

	// Every declared option appears in the tally, zero when unvoted.
	results := make(map[string]int64, len(poll.Options))
	var total int64
	for _, opt := range poll.Options {
		results[opt] = counts[opt]
		total += counts[opt]
	}

	return &domain.PollResults{
		Poll:       poll,
		Results:    results,
		TotalVotes: total,
	}, nil
}

func (s *pollService) Create(ctx context.Context, principal domain.Principal, input ports.CreatePollInput) (*domain.Poll, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validateOptions(input.Options); err != nil {
		return nil, err
	}
	endTime, err := parseEndTime(input.EndTime)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	poll := &domain.Poll{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		Options:     input.Options,
		EndTime:     endTime,
		Active:      true,
		CreatedBy:   principal.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}

	return poll, nil
}

func (s *pollService) Update(ctx context.Context, principal domain.Principal, id string, input ports.UpdatePollInput) (*domain.Poll, error) {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidPollID
	}

	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	endTime, err := parseEndTime(input.EndTime)
	if err != nil {
		return nil, err
	}

	poll := &domain.Poll{
		ID:          pollID,
		Title:       input.Title,
		Description: input.Description,
		EndTime:     endTime,
		Active:      input.Active,
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return s.pollRepo.Update(ctx, poll)
}

func (s *pollService) Delete(ctx context.Context, principal domain.Principal, id string) error {
	pollID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidPollID
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return s.pollRepo.Delete(ctx, pollID)
}

func validateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length < 3 || length > 200 {
		return domain.NewValidationError("titulo", "must be between 3 and 200 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > 1000 {
		return domain.NewValidationError("descripcion", "must not exceed 1000 characters")
	}
	return nil
}

func validateOptions(options []string) error {
	if len(options) < 2 {
		return domain.NewValidationError("opciones", "at least two options are required")
	}
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		if opt == "" {
			return domain.NewValidationError("opciones", "options must not be empty")
		}
		if _, dup := seen[opt]; dup {
			return domain.NewValidationError("opciones", "options must be distinct")
		}
		seen[opt] = struct{}{}
	}
	return nil
}

func parseEndTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, domain.NewValidationError("fecha_fin", "an end time is required")
	}
	endTime, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError("fecha_fin", "must be a valid RFC 3339 timestamp")
	}
	return endTime, nil
}
