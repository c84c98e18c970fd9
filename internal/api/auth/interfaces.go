package auth

import (
	"context"

	"github.com/personalab/chat-backend/internal/entity"
)

type AuthUsecase interface {
	SignUp(ctx context.Context, email, password string) (*entity.AuthSession, error)
	SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error)
	SignOut(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*entity.IdentityUser, error)
}
