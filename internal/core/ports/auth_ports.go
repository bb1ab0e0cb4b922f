package ports

import (
	"context"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
)

// TokenVerifier is the authentication collaborator: it turns a bearer
// token into an authenticated principal or fails.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Principal, error)
}
