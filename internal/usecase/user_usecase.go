package usecase

import (
	"context"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	"mingle/pkg/errors"
)

type UserUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type UpdateProfileInput struct {
	DisplayName string
	Avatar      string
	Bio         string
	Civility    string
	Phone       string
	Age         int
	Nationality string
	ExpoToken   string
}

// PublicProfile is the subset of a profile visible to other users.
type PublicProfile struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Avatar         string `json:"avatar,omitempty"`
	Bio            string `json:"bio,omitempty"`
	Role           string `json:"role"`
	FollowersCount int    `json:"followers_count"`
	PostsCount     int    `json:"posts_count"`
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		ID:             user.ID,
		DisplayName:    user.DisplayName,
		Avatar:         user.Avatar,
		Bio:            user.Bio,
		Role:           user.Role,
		FollowersCount: user.FollowersCount,
		PostsCount:     user.PostsCount,
	}, nil
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.DisplayName = input.DisplayName
	user.Avatar = input.Avatar
	user.Bio = input.Bio
	user.Civility = input.Civility
	user.Phone = input.Phone
	user.Nationality = input.Nationality
	user.ExpoToken = input.ExpoToken
	if input.Age > 0 {
		user.Age = input.Age
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.BadRequest("Password must be at least 6 characters", nil)
	}
	return uc.firebaseAuth.UpdateUserPassword(ctx, userID, newPassword)
}
