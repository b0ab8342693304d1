package entity

import "time"

// SystemSenderID is the sentinel sender id used for system-authored messages.
const SystemSenderID = "system"

type Message struct {
	ID         string    `json:"id" firestore:"id"`
	ChatID     string    `json:"chat_id" firestore:"chatId"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	SenderName string    `json:"sender_name,omitempty" firestore:"senderName,omitempty"`
	Text       string    `json:"text" firestore:"text"`
	Type       string    `json:"type" firestore:"type"` // "text", "system"
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
