package entity

import "time"

type Event struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Type        string    `json:"type,omitempty" firestore:"type,omitempty"`
	Date        time.Time `json:"date" firestore:"date"`
	Location    string    `json:"location,omitempty" firestore:"location,omitempty"`
	City        string    `json:"city,omitempty" firestore:"city,omitempty"`
	Country     string    `json:"country,omitempty" firestore:"country,omitempty"`
	Lat         float64   `json:"lat,omitempty" firestore:"lat,omitempty"`
	Lng         float64   `json:"lng,omitempty" firestore:"lng,omitempty"`
	PlaceID     string    `json:"place_id,omitempty" firestore:"place_id,omitempty"`
	Price       string    `json:"price,omitempty" firestore:"price,omitempty"` // free-form ("10€", "Gratuit")
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty" firestore:"imageUrl,omitempty"`
	CreatorID   string    `json:"creator_id" firestore:"creatorId"`

	// Mirrored from the user side; written without a transaction
	Participants []string `json:"participants" firestore:"participants"`
	Favorites    []string `json:"favorites" firestore:"favorites"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
