package jwt

import (
	"context"
	"errors"
	"fmt"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/domain"
	"github.com/Frankmolin/Back-2-Biblioteca-CCN-BPAF/internal/core/ports"
)

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) ports.TokenVerifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, tokenString string) (*domain.Principal, error) {
	token, err := jwtv5.Parse(tokenString, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwtv5.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	rawID, ok := claims["userId"].(string)
	if !ok {
		return nil, errors.New("userId not found in claims")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid userId claim: %w", err)
	}

	role, _ := claims["rol"].(string)

	return &domain.Principal{ID: userID, Role: role}, nil
}
