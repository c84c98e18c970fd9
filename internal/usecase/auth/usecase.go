package auth

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/personalab/chat-backend/internal/entity"
	"go.uber.org/zap"
)

// AuthUsecase wraps the external identity service. Credential checks
// and token issuance happen upstream; this layer only orchestrates.
type AuthUsecase struct {
	identity IdentityConnector
	logger   *zap.Logger
}

// NewUsecase creates a new auth use case
func NewUsecase(identity IdentityConnector, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{
		identity: identity,
		logger:   logger,
	}
}

// SignUp registers a new account with the identity service.
func (uc *AuthUsecase) SignUp(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	session, err := uc.identity.SignUp(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	ctxzap.Info(ctx, "account registered", zap.String("user_id", session.User.ID))

	return session, nil
}

// SignIn exchanges credentials for an access token.
func (uc *AuthUsecase) SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	session, err := uc.identity.SignIn(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	return session, nil
}

// SignOut revokes the access token's session upstream.
func (uc *AuthUsecase) SignOut(ctx context.Context, accessToken string) error {
	if err := uc.identity.SignOut(ctx, accessToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}

	return nil
}

// CurrentUser resolves the user behind an access token.
func (uc *AuthUsecase) CurrentUser(ctx context.Context, accessToken string) (*entity.IdentityUser, error) {
	user, err := uc.identity.GetUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	return user, nil
}
