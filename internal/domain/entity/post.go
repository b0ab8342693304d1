package entity

import "time"

// Offerings carries the monetizable services attached to a feed post.
// Prices are display values; no payment flow is attached to them.
type Offerings struct {
	AudioCall *CallOffering    `json:"audio_call,omitempty" firestore:"audioCall,omitempty"`
	VideoCall *CallOffering    `json:"video_call,omitempty" firestore:"videoCall,omitempty"`
	Media     *MediaOffering   `json:"media,omitempty" firestore:"media,omitempty"`
	Sessions  *SessionOffering `json:"sessions,omitempty" firestore:"sessions,omitempty"`
}

type CallOffering struct {
	Price       float64 `json:"price,omitempty" firestore:"price,omitempty"`
	DurationMin int     `json:"duration_min,omitempty" firestore:"durationMin,omitempty"`
}

type MediaOffering struct {
	PricePerItem float64 `json:"price_per_item,omitempty" firestore:"pricePerItem,omitempty"`
}

type SessionOffering struct {
	Packages []SessionPackage `json:"packages" firestore:"packages"`
}

type SessionPackage struct {
	Label    string  `json:"label" firestore:"label"`
	Price    float64 `json:"price" firestore:"price"`
	Includes string  `json:"includes,omitempty" firestore:"includes,omitempty"`
}

type Post struct {
	ID        string     `json:"id" firestore:"id"`
	AuthorID  string     `json:"author_id" firestore:"authorId"`
	Title     string     `json:"title,omitempty" firestore:"title"`
	Content   string     `json:"content,omitempty" firestore:"content"`
	MediaURLs []string   `json:"media_urls" firestore:"mediaUrls"`
	Offerings *Offerings `json:"offerings,omitempty" firestore:"offerings"`
	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
}
