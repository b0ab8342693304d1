package usecase

import (
	"context"
	"fmt"
	"time"

	"mingle/internal/domain/entity"
	"mingle/internal/domain/repository"
	"mingle/pkg/errors"
	"mingle/pkg/logger"
)

const defaultEventTitle = "Événement"

// ParticipationUseCase flips event membership and drives the chat
// provisioning that hangs off a join: creating the event chat on first
// participation, posting the one-time welcome message and seeding the
// unread counters.
//
// The whole join pipeline is a sequence of independent remote writes with
// no transaction around them. A failure mid-sequence aborts the remaining
// steps, is logged and otherwise swallowed: membership lists can
// transiently diverge and a welcome can be re-sent after a crash between
// the message append and the flag write.
type ParticipationUseCase struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
	chatRepo  repository.ChatRepository
	chats     *ChatUseCase
}

func NewParticipationUseCase(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	chatRepo repository.ChatRepository,
	chats *ChatUseCase,
) *ParticipationUseCase {
	return &ParticipationUseCase{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		chatRepo:  chatRepo,
		chats:     chats,
	}
}

// ToggleParticipation adds or removes the user from the event. It reports
// whether the user is a participant after the call. Leaving performs no
// chat cleanup: the chat, its messages and counters are retained.
func (uc *ParticipationUseCase) ToggleParticipation(ctx context.Context, userID, eventID string) (bool, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	if containsString(user.Participations, eventID) {
		if err := uc.userRepo.RemoveParticipation(ctx, userID, eventID); err != nil {
			logger.Error("ToggleParticipation: failed to remove participation for user %s: %v", userID, err)
		}
		if err := uc.eventRepo.RemoveParticipant(ctx, eventID, userID); err != nil {
			logger.Error("ToggleParticipation: failed to remove participant from event %s: %v", eventID, err)
		}
		return false, nil
	}

	if err := uc.userRepo.AddParticipation(ctx, userID, eventID); err != nil {
		logger.Error("ToggleParticipation: failed to add participation for user %s: %v", userID, err)
	}
	if err := uc.eventRepo.AddParticipant(ctx, eventID, userID); err != nil {
		logger.Error("ToggleParticipation: failed to add participant to event %s: %v", eventID, err)
	}

	uc.provisionEventChat(ctx, eventID, userID)
	uc.sendWelcomeMessage(ctx, eventID, userID)

	return true, nil
}

// provisionEventChat ensures the chat document keyed by the event id
// exists and contains the joining user. The event title and image are
// snapshotted into the chat at creation time; later event edits do not
// propagate. There is no lock between the existence check and the write,
// so two first joiners may both observe "absent"; the "present" branch
// uses array-union, so re-entry never duplicates a participant.
func (uc *ParticipationUseCase) provisionEventChat(ctx context.Context, eventID, userID string) {
	chat, err := uc.chatRepo.GetByID(ctx, eventID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			logger.Error("provisionEventChat: failed to look up chat %s: %v", eventID, err)
			return
		}

		title := defaultEventTitle
		imageURL := ""
		if event, err := uc.eventRepo.GetByID(ctx, eventID); err == nil {
			if event.Title != "" {
				title = event.Title
			}
			imageURL = event.ImageURL
		} else {
			logger.Warn("provisionEventChat: event %s not found, using defaults: %v", eventID, err)
		}

		newChat := &entity.Chat{
			ID:            eventID,
			EventID:       eventID,
			Participants:  []string{userID},
			EventTitle:    title,
			EventImageURL: imageURL,
			LastMessage:   "",
		}
		if err := uc.chatRepo.Create(ctx, newChat); err != nil {
			logger.Error("provisionEventChat: failed to create chat %s: %v", eventID, err)
		}
		return
	}

	if err := uc.chatRepo.AddParticipant(ctx, chat.ID, userID); err != nil {
		logger.Error("provisionEventChat: failed to add user %s to chat %s: %v", userID, chat.ID, err)
	}
}

// sendWelcomeMessage posts the one-time system welcome for the joining
// user and fans out the unread counters.
//
// The joiner's own counter is set to 1 on every join, before the welcome
// flag is consulted, so a re-join resets the badge to 1 even though the
// welcome itself is sent at most once.
func (uc *ParticipationUseCase) sendWelcomeMessage(ctx context.Context, chatID, userID string) {
	welcomed, err := uc.chatRepo.IsWelcomed(ctx, chatID, userID)
	if err != nil {
		logger.Error("sendWelcomeMessage: failed to read welcome flag for %s/%s: %v", chatID, userID, err)
		return
	}

	if err := uc.chatRepo.SetUnread(ctx, chatID, userID, 1); err != nil {
		logger.Error("sendWelcomeMessage: failed to seed unread counter for %s/%s: %v", chatID, userID, err)
		return
	}
	uc.chats.PublishUnreadTotal(ctx, userID)

	if welcomed {
		return
	}

	// Fresh read so a renamed profile is welcomed under its current name.
	displayName := "Utilisateur"
	if user, err := uc.userRepo.GetByID(ctx, userID); err == nil && user.DisplayName != "" {
		displayName = user.DisplayName
	}

	chat, err := uc.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		logger.Error("sendWelcomeMessage: failed to read chat %s: %v", chatID, err)
		return
	}
	title := chat.EventTitle
	if title == "" {
		title = defaultEventTitle
	}

	text := fmt.Sprintf("Bienvenue dans le chat \"%s\", %s !", title, displayName)
	message := &entity.Message{
		ChatID:     chatID,
		SenderID:   entity.SystemSenderID,
		SenderName: "Système",
		Text:       text,
		Type:       "system",
		CreatedAt:  time.Now(),
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		logger.Error("sendWelcomeMessage: failed to append welcome message to chat %s: %v", chatID, err)
		return
	}

	if err := uc.chatRepo.UpdatePreview(ctx, chatID, text, message.CreatedAt); err != nil {
		logger.Error("sendWelcomeMessage: failed to update preview for chat %s: %v", chatID, err)
		return
	}

	for _, participantID := range chat.Participants {
		if participantID == userID {
			continue
		}
		if err := uc.chatRepo.IncrementUnread(ctx, chatID, participantID); err != nil {
			logger.Error("sendWelcomeMessage: failed to increment unread for %s/%s: %v", chatID, participantID, err)
			return
		}
		uc.chats.PublishUnreadTotal(ctx, participantID)
	}

	if err := uc.chatRepo.SetWelcomed(ctx, chatID, userID); err != nil {
		logger.Error("sendWelcomeMessage: failed to set welcome flag for %s/%s: %v", chatID, userID, err)
		return
	}

	uc.chats.BroadcastMessage(ctx, chat, message)
}

func containsString(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
