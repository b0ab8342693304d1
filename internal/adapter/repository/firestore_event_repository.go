package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	"mingle/pkg/errors"
	"mingle/pkg/logger"
)

type firestoreEventRepository struct {
	client *firestore.Client
}

func NewFirestoreEventRepository(client *firestore.Client) repository.EventRepository {
	return &firestoreEventRepository{
		client: client,
	}
}

func (r *firestoreEventRepository) Create(ctx context.Context, event *entity.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = time.Now()

	if event.Participants == nil {
		event.Participants = []string{}
	}
	if event.Favorites == nil {
		event.Favorites = []string{}
	}

	_, err := r.client.Collection("events").Doc(event.ID).Set(ctx, event)
	if err != nil {
		return errors.Internal("Failed to create event", err)
	}
	return nil
}

func (r *firestoreEventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	doc, err := r.client.Collection("events").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Event", err)
		}
		return nil, errors.Internal("Failed to get event", err)
	}

	var event entity.Event
	if err := doc.DataTo(&event); err != nil {
		return nil, errors.Internal("Failed to parse event data", err)
	}
	event.ID = doc.Ref.ID

	return &event, nil
}

func (r *firestoreEventRepository) List(ctx context.Context, limit, offset int) ([]*entity.Event, int64, error) {
	query := r.client.Collection("events").OrderBy("date", firestore.Asc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching events: %v", err)
		return nil, 0, errors.Internal("Failed to fetch events", err)
	}

	total := int64(len(allDocs))

	start := offset
	end := len(allDocs)
	if limit > 0 {
		end = start + limit
		if end > len(allDocs) {
			end = len(allDocs)
		}
	}
	if start > len(allDocs) {
		start = len(allDocs)
	}

	var events []*entity.Event
	for i := start; i < end; i++ {
		var event entity.Event
		if err := allDocs[i].DataTo(&event); err != nil {
			logger.Warn("Skipping malformed event document %s: %v", allDocs[i].Ref.ID, err)
			continue
		}
		event.ID = allDocs[i].Ref.ID
		events = append(events, &event)
	}

	return events, total, nil
}

func (r *firestoreEventRepository) Update(ctx context.Context, event *entity.Event) error {
	_, err := r.client.Collection("events").Doc(event.ID).Set(ctx, event)
	if err != nil {
		return errors.Internal("Failed to update event", err)
	}
	return nil
}

func (r *firestoreEventRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("events").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete event", err)
	}
	return nil
}

func (r *firestoreEventRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	return r.updateArray(ctx, eventID, "participants", firestore.ArrayUnion(userID))
}

func (r *firestoreEventRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	return r.updateArray(ctx, eventID, "participants", firestore.ArrayRemove(userID))
}

func (r *firestoreEventRepository) AddFavorite(ctx context.Context, eventID, userID string) error {
	return r.updateArray(ctx, eventID, "favorites", firestore.ArrayUnion(userID))
}

func (r *firestoreEventRepository) RemoveFavorite(ctx context.Context, eventID, userID string) error {
	return r.updateArray(ctx, eventID, "favorites", firestore.ArrayRemove(userID))
}

func (r *firestoreEventRepository) updateArray(ctx context.Context, eventID, field string, value interface{}) error {
	_, err := r.client.Collection("events").Doc(eventID).Update(ctx, []firestore.Update{
		{Path: field, Value: value},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Event", err)
		}
		return errors.Internal("Failed to update event "+field, err)
	}
	return nil
}
