package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mingle/internal/domain/entity"
	"mingle/pkg/errors"
)

func TestUpdateProfile(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", DisplayName: "Alice", Age: 25})
	uc := NewUserUseCase(userRepo, &fakeAuthClient{})

	updated, err := uc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{
		DisplayName: "Alice B",
		Bio:         "Toujours partante",
		ExpoToken:   "ExponentPushToken[alice]",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.DisplayName)
	assert.Equal(t, "Toujours partante", updated.Bio)
	assert.Equal(t, "ExponentPushToken[alice]", updated.ExpoToken)
	// Zero age leaves the stored value alone
	assert.Equal(t, 25, updated.Age)
}

func TestGetPublicProfileOmitsPrivateFields(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{
		ID:          "u1",
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Role:        "influencer",
		PostsCount:  3,
	})
	uc := NewUserUseCase(userRepo, &fakeAuthClient{})

	profile, err := uc.GetPublicProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.DisplayName)
	assert.Equal(t, 3, profile.PostsCount)
}

func TestChangePasswordTooShort(t *testing.T) {
	uc := NewUserUseCase(newFakeUserRepo(&entity.User{ID: "u1"}), &fakeAuthClient{})

	err := uc.ChangePassword(context.Background(), "u1", "abc")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	assert.NoError(t, uc.ChangePassword(context.Background(), "u1", "abcdef"))
}
