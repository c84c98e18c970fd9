package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/personalab/chat-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector keeps accounts and tokens in memory. Any password is
// accepted for an existing account.
type MockConnector struct {
	logger *zap.Logger

	mu     sync.Mutex
	users  map[string]entity.IdentityUser // by email
	tokens map[string]entity.IdentityUser // by access token
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
		users:  make(map[string]entity.IdentityUser),
		tokens: make(map[string]entity.IdentityUser),
	}
}

func (m *MockConnector) SignUp(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	ctxzap.Info(ctx, "[MOCK] signing up", zap.String("email", email))

	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.ToLower(email)
	user, ok := m.users[email]
	if !ok {
		user = entity.IdentityUser{ID: uuid.New().String(), Email: email}
		m.users[email] = user
	}

	token := fmt.Sprintf("mock-token-%s", uuid.New().String())
	m.tokens[token] = user

	return &entity.AuthSession{AccessToken: token, User: user}, nil
}

func (m *MockConnector) SignIn(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	ctxzap.Info(ctx, "[MOCK] signing in", zap.String("email", email))

	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.ToLower(email)
	user, ok := m.users[email]
	if !ok {
		return nil, entity.ErrInvalidCredentials
	}

	token := fmt.Sprintf("mock-token-%s", uuid.New().String())
	m.tokens[token] = user

	return &entity.AuthSession{AccessToken: token, User: user}, nil
}

func (m *MockConnector) SignOut(ctx context.Context, accessToken string) error {
	ctxzap.Info(ctx, "[MOCK] signing out")

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, accessToken)
	return nil
}

func (m *MockConnector) GetUser(ctx context.Context, accessToken string) (*entity.IdentityUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.tokens[accessToken]
	if !ok {
		return nil, entity.ErrNotAuthenticated
	}

	return &user, nil
}
