package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mingle/internal/domain/entity"
	"mingle/pkg/errors"
)

type fakeAuthClient struct {
	nextUID     string
	deleted     []string
	signInError error
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	return f.nextUID, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return f.nextUID, nil
}

func (f *fakeAuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	return "token-" + uid, nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	if f.signInError != nil {
		return "", f.signInError
	}
	return "id-token", nil
}

func (f *fakeAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	return nil
}

func (f *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

func TestRegisterCreatesProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := NewAuthUseCase(userRepo, &fakeAuthClient{nextUID: "u1"})

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:       "alice@example.com",
		Password:    "secret1",
		DisplayName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", result.User.ID)
	assert.Equal(t, "client", result.User.Role)
	assert.Equal(t, "id-token", result.Token)
	assert.NotNil(t, result.User.Participations)

	stored, err := userRepo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.DisplayName)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", Email: "alice@example.com"})
	uc := NewAuthUseCase(userRepo, &fakeAuthClient{nextUID: "u2"})

	_, err := uc.Register(context.Background(), RegisterInput{
		Email:       "alice@example.com",
		Password:    "secret1",
		DisplayName: "Imposter",
	})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestLoginUnknownPassword(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", Email: "alice@example.com"})
	uc := NewAuthUseCase(userRepo, &fakeAuthClient{nextUID: "u1", signInError: assert.AnError})

	_, err := uc.Login(context.Background(), "alice@example.com", "wrong")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", Email: "alice@example.com", DisplayName: "Alice"})
	uc := NewAuthUseCase(userRepo, &fakeAuthClient{nextUID: "u1"})

	result, err := uc.Login(context.Background(), "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "id-token", result.Token)
	assert.Equal(t, "Alice", result.User.DisplayName)
}
