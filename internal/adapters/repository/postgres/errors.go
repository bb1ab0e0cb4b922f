package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/lib/pq"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
)

const uniqueVoteConstraint = "votos_votacion_id_usuario_id_key"

// translateError maps driver failures onto domain error kinds so no
// storage detail crosses the repository boundary. Unique violations on
// the per-user vote constraint are the losing side of a concurrent
// double-submission and surface as a duplicate vote.
func translateError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == uniqueVoteConstraint {
			return domain.ErrAlreadyVoted
		}
		if pqErr.Code.Class() == "23" {
			return domain.ErrConstraintViolation
		}
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, driver.ErrBadConn) {
		return domain.ErrUnavailable
	}

	return err
}
