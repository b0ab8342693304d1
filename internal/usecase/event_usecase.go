package usecase

import (
	"context"
	"time"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	"mingle/pkg/errors"
	"mingle/pkg/logger"
)

type EventUseCase struct {
	eventRepo   repository.EventRepository
	userRepo    repository.UserRepository
	rateLimiter RateLimiter
}

func NewEventUseCase(eventRepo repository.EventRepository, userRepo repository.UserRepository, rateLimiter RateLimiter) *EventUseCase {
	return &EventUseCase{
		eventRepo:   eventRepo,
		userRepo:    userRepo,
		rateLimiter: rateLimiter,
	}
}

type CreateEventInput struct {
	Title       string
	Type        string
	Date        time.Time
	Location    string
	City        string
	Country     string
	Lat         float64
	Lng         float64
	PlaceID     string
	Price       string
	Description string
	ImageURL    string
}

type UpdateEventInput struct {
	Title       string
	Type        string
	Date        time.Time
	Location    string
	City        string
	Country     string
	Lat         float64
	Lng         float64
	PlaceID     string
	Price       string
	Description string
	ImageURL    string
}

func (uc *EventUseCase) CreateEvent(ctx context.Context, creatorID string, input CreateEventInput) (*entity.Event, error) {
	if uc.rateLimiter != nil {
		allowed, waitTime := uc.rateLimiter.Allow(creatorID, "create_event")
		if !allowed {
			logger.Warn("CreateEvent rate limited: user %s must wait %v", creatorID, waitTime)
			return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before creating another event", waitTime)
		}
	}

	event := &entity.Event{
		Title:        input.Title,
		Type:         input.Type,
		Date:         input.Date,
		Location:     input.Location,
		City:         input.City,
		Country:      input.Country,
		Lat:          input.Lat,
		Lng:          input.Lng,
		PlaceID:      input.PlaceID,
		Price:        input.Price,
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		CreatorID:    creatorID,
		Participants: []string{},
		Favorites:    []string{},
	}

	if err := uc.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (uc *EventUseCase) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	return uc.eventRepo.GetByID(ctx, id)
}

func (uc *EventUseCase) ListEvents(ctx context.Context, limit, offset int) ([]*entity.Event, int64, error) {
	return uc.eventRepo.List(ctx, limit, offset)
}

func (uc *EventUseCase) UpdateEvent(ctx context.Context, userID, eventID string, input UpdateEventInput) (*entity.Event, error) {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.CreatorID != userID {
		return nil, errors.Forbidden("Only the event creator can edit it", nil)
	}

	event.Title = input.Title
	event.Type = input.Type
	event.Date = input.Date
	event.Location = input.Location
	event.City = input.City
	event.Country = input.Country
	event.Lat = input.Lat
	event.Lng = input.Lng
	event.PlaceID = input.PlaceID
	event.Price = input.Price
	event.Description = input.Description
	if input.ImageURL != "" {
		event.ImageURL = input.ImageURL
	}

	if err := uc.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// DeleteEvent removes the event document. The event chat and the
// membership entries on user documents are not cascaded.
func (uc *EventUseCase) DeleteEvent(ctx context.Context, userID, eventID string) error {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	if event.CreatorID != userID {
		return errors.Forbidden("Only the event creator can delete it", nil)
	}

	return uc.eventRepo.Delete(ctx, eventID)
}

// ListParticipants resolves the event's participant ids into user profiles.
func (uc *EventUseCase) ListParticipants(ctx context.Context, eventID string) ([]*entity.User, error) {
	return uc.resolveUsers(ctx, eventID, func(e *entity.Event) []string { return e.Participants })
}

// ListFavoritedBy resolves the users that favorited the event.
func (uc *EventUseCase) ListFavoritedBy(ctx context.Context, eventID string) ([]*entity.User, error) {
	return uc.resolveUsers(ctx, eventID, func(e *entity.Event) []string { return e.Favorites })
}

func (uc *EventUseCase) resolveUsers(ctx context.Context, eventID string, pick func(*entity.Event) []string) ([]*entity.User, error) {
	event, err := uc.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var users []*entity.User
	for _, userID := range pick(event) {
		user, err := uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			logger.Warn("resolveUsers: user %s not found for event %s: %v", userID, eventID, err)
			continue
		}
		users = append(users, user)
	}

	return users, nil
}
