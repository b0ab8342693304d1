package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	"mingle/pkg/errors"
	"mingle/pkg/logger"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return errors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := r.client.Collection("users").Where("email", "==", email).Limit(1)
	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query user by email", err)
	}
	if len(docs) == 0 {
		return nil, errors.NotFound("User", nil)
	}

	var user entity.User
	if err := docs[0].DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	user.ID = docs[0].Ref.ID

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	logger.Debug("Updating user in Firestore, ID: %s", user.ID)

	updateData := map[string]interface{}{
		"displayName": user.DisplayName,
		"avatar":      user.Avatar,
		"bio":         user.Bio,
		"civility":    user.Civility,
		"phone":       user.Phone,
		"nationality": user.Nationality,
		"role":        user.Role,
		"expoToken":   user.ExpoToken,
		"updatedAt":   time.Now(),
	}
	if user.Age > 0 {
		updateData["age"] = user.Age
	}

	// Skip empty strings so a partial profile update cannot blank out
	// fields the caller did not send.
	cleanUpdateData := make(map[string]interface{})
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		cleanUpdateData[key] = value
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) AddParticipation(ctx context.Context, userID, eventID string) error {
	return r.updateArray(ctx, userID, "participations", firestore.ArrayUnion(eventID))
}

func (r *firestoreUserRepository) RemoveParticipation(ctx context.Context, userID, eventID string) error {
	return r.updateArray(ctx, userID, "participations", firestore.ArrayRemove(eventID))
}

func (r *firestoreUserRepository) AddFavorite(ctx context.Context, userID, eventID string) error {
	return r.updateArray(ctx, userID, "favorites", firestore.ArrayUnion(eventID))
}

func (r *firestoreUserRepository) RemoveFavorite(ctx context.Context, userID, eventID string) error {
	return r.updateArray(ctx, userID, "favorites", firestore.ArrayRemove(eventID))
}

func (r *firestoreUserRepository) updateArray(ctx context.Context, userID, field string, value interface{}) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: field, Value: value},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("User", err)
		}
		return errors.Internal("Failed to update user "+field, err)
	}
	return nil
}
