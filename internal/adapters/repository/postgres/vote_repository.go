package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

// CastVote runs the whole vote protocol in one transaction. The poll row
// is locked FOR UPDATE so the activity-window and duplicate checks
// serialize with the insert; the unique index on (votacion_id, usuario_id)
// remains as a backstop should two sessions race past the lock.
func (r *voteRepository) CastVote(ctx context.Context, vote *domain.Vote, now time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translateError(err))
	}
	defer tx.Rollback()

	queryPoll := `
		SELECT id, titulo, descripcion, opciones, fecha_fin, activa, created_by, created_at, updated_at
		FROM votaciones
		WHERE id = $1
		FOR UPDATE
	`
	var poll domain.Poll
	var options pq.StringArray
	err = tx.QueryRowContext(ctx, queryPoll, vote.PollID).Scan(
		&poll.ID, &poll.Title, &poll.Description, &options,
		&poll.EndTime, &poll.Active, &poll.CreatedBy, &poll.CreatedAt, &poll.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrPollNotFound
		}
		return fmt.Errorf("failed to get poll: %w", translateError(err))
	}
	poll.Options = options

	if err := poll.AcceptsVote(vote.Option, now); err != nil {
		return err
	}

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM votos WHERE votacion_id = $1 AND usuario_id = $2 LIMIT 1`,
		vote.PollID, vote.UserID,
	).Scan(&exists)
	if err == nil {
		return domain.ErrAlreadyVoted
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing vote: %w", translateError(err))
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO votos (id, votacion_id, usuario_id, opcion, created_at) VALUES ($1, $2, $3, $4, $5)`,
		vote.ID, vote.PollID, vote.UserID, vote.Option, vote.CreatedAt,
	)
	if err != nil {
		return translateError(err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translateError(err))
	}

	return nil
}

func (r *voteRepository) Find(ctx context.Context, pollID, userID uuid.UUID) (*domain.Vote, error) {
	query := `
		SELECT id, votacion_id, usuario_id, opcion, created_at
		FROM votos
		WHERE votacion_id = $1 AND usuario_id = $2
	`

	var vote domain.Vote
	err := r.db.QueryRowContext(ctx, query, pollID, userID).Scan(
		&vote.ID, &vote.PollID, &vote.UserID, &vote.Option, &vote.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to find vote: %w", translateError(err))
	}

	return &vote, nil
}

func (r *voteRepository) CountByOption(ctx context.Context, pollID uuid.UUID) (map[string]int64, error) {
	query := `
		SELECT opcion, COUNT(*)
		FROM votos
		WHERE votacion_id = $1
		GROUP BY opcion
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", translateError(err))
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var option string
		var count int64
		if err := rows.Scan(&option, &count); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		counts[option] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", translateError(err))
	}

	return counts, nil
}
