package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	query := `
		INSERT INTO votaciones (id, titulo, descripcion, opciones, fecha_fin, activa, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		poll.ID, poll.Title, poll.Description, pq.Array(poll.Options),
		poll.EndTime, poll.Active, poll.CreatedBy, poll.CreatedAt, poll.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", translateError(err))
	}

	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Poll, error) {
	query := `
		SELECT id, titulo, descripcion, opciones, fecha_fin, activa, created_by, created_at, updated_at
		FROM votaciones
		WHERE id = $1
	`

	var poll domain.Poll
	var options pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&poll.ID, &poll.Title, &poll.Description, &options,
		&poll.EndTime, &poll.Active, &poll.CreatedBy, &poll.CreatedAt, &poll.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get poll: %w", translateError(err))
	}
	poll.Options = options

	return &poll, nil
}

func (r *pollRepository) GetAll(ctx context.Context) ([]*domain.Poll, error) {
	query := `
		SELECT id, titulo, descripcion, opciones, fecha_fin, activa, created_by, created_at, updated_at
		FROM votaciones
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all polls: %w", translateError(err))
	}
	defer rows.Close()

	var polls []*domain.Poll
	for rows.Next() {
		var poll domain.Poll
		var options pq.StringArray
		if err := rows.Scan(
			&poll.ID, &poll.Title, &poll.Description, &options,
			&poll.EndTime, &poll.Active, &poll.CreatedBy, &poll.CreatedAt, &poll.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		poll.Options = options
		polls = append(polls, &poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", translateError(err))
	}

	return polls, nil
}

func (r *pollRepository) Update(ctx context.Context, poll *domain.Poll) (*domain.Poll, error) {
	query := `
		UPDATE votaciones
		SET titulo = $1, descripcion = $2, fecha_fin = $3, activa = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, titulo, descripcion, opciones, fecha_fin, activa, created_by, created_at, updated_at
	`

	var updated domain.Poll
	var options pq.StringArray
	err := r.db.QueryRowContext(ctx, query,
		poll.Title, poll.Description, poll.EndTime, poll.Active, poll.ID,
	).Scan(
		&updated.ID, &updated.Title, &updated.Description, &options,
		&updated.EndTime, &updated.Active, &updated.CreatedBy, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to update poll: %w", translateError(err))
	}
	updated.Options = options

	return &updated, nil
}

func (r *pollRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translateError(err))
	}
	defer tx.Rollback()

	// Votes first; the FK cascade would also cover them, the explicit
	// delete keeps the pair in one visible unit of work.
	if _, err := tx.ExecContext(ctx, `DELETE FROM votos WHERE votacion_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete votes: %w", translateError(err))
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM votaciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete poll: %w", translateError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrPollNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", translateError(err))
	}

	return nil
}
