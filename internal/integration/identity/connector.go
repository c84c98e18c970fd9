package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/personalab/chat-backend/internal/config"
	"github.com/personalab/chat-backend/internal/entity"
	"github.com/personalab/chat-backend/internal/integration/common"
	pkghttp "github.com/personalab/chat-backend/pkg/http"
	"go.uber.org/zap"
)

// Connector talks to a GoTrue-style identity service. Authentication,
// account confirmation and session storage are fully owned by that
// service; this connector only maps its REST contract.
type Connector struct {
	config    config.IdentityConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.IdentityConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string              `json:"access_token"`
	User        entity.IdentityUser `json:"user"`
}

// SignUp registers a new account. Depending on the identity service
// configuration the account may require email confirmation before the
// first sign-in succeeds.
func (c *Connector) SignUp(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	ctxzap.Info(ctx, "signing up via identity service")

	var resp tokenResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.SignUpEndpoint,
		&credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, mapAuthError(err)
	}

	return &entity.AuthSession{AccessToken: resp.AccessToken, User: resp.User}, nil
}

// SignIn exchanges credentials for an access token.
func (c *Connector) SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	ctxzap.Info(ctx, "signing in via identity service")

	var resp tokenResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.TokenEndpoint,
		&credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, mapAuthError(err)
	}

	if resp.AccessToken == "" {
		return nil, fmt.Errorf("identity service returned no access token")
	}

	return &entity.AuthSession{AccessToken: resp.AccessToken, User: resp.User}, nil
}

// SignOut revokes the token's session.
func (c *Connector) SignOut(ctx context.Context, accessToken string) error {
	ctxzap.Info(ctx, "signing out via identity service")

	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.SignOutEndpoint, nil, nil,
		pkghttp.WithHeader("Authorization", "Bearer "+accessToken))
	if err != nil {
		return mapAuthError(err)
	}

	return nil
}

// GetUser resolves the current user for the token.
func (c *Connector) GetUser(ctx context.Context, accessToken string) (*entity.IdentityUser, error) {
	var user entity.IdentityUser
	err := c.connector.DoRequest(ctx, http.MethodGet, c.config.UserEndpoint, nil, &user,
		pkghttp.WithHeader("Authorization", "Bearer "+accessToken))
	if err != nil {
		return nil, mapAuthError(err)
	}

	if user.Email == "" {
		return nil, entity.ErrNotAuthenticated
	}

	return &user, nil
}

// mapAuthError translates upstream auth failures to domain errors so
// handlers can answer 401/400 without inspecting HTTP details.
func mapAuthError(err error) error {
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", entity.ErrNotAuthenticated, httpErr.Message)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return fmt.Errorf("%w: %s", entity.ErrInvalidCredentials, httpErr.Message)
		}
	}
	return err
}
