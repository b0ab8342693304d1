package entity

import "time"

// Chat is keyed by the event id: one chat per event, created lazily when
// the first participant joins.
type Chat struct {
	ID           string   `json:"id" firestore:"id"`
	EventID      string   `json:"event_id" firestore:"eventId"`
	Participants []string `json:"participants" firestore:"participants"`

	// Denormalized event display fields, snapshotted at creation time.
	// Later event edits do not propagate here.
	EventTitle    string `json:"event_title" firestore:"eventTitle"`
	EventImageURL string `json:"event_image_url,omitempty" firestore:"eventImageUrl"`

	LastMessage     string     `json:"last_message" firestore:"lastMessage"`
	LastMessageTime *time.Time `json:"last_message_time,omitempty" firestore:"lastMessageTime"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
