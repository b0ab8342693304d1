package entity

// UnreadCounter lives at chats/{chatID}/unreads/{userID}. It is maintained
// imperatively by every write path that adds a message; there is no
// recomputation from the message log.
type UnreadCounter struct {
	ChatID string `json:"chat_id" firestore:"-"`
	UserID string `json:"user_id" firestore:"-"`
	Count  int    `json:"count" firestore:"count"`
}

// WelcomeFlag lives at chats/{chatID}/systemWelcome/{userID} and marks that
// the one-time welcome message has been sent for that user.
type WelcomeFlag struct {
	Welcomed bool `json:"welcomed" firestore:"welcomed"`
}
