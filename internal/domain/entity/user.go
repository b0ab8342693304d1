package entity

import "time"

type User struct {
	ID          string `json:"id" firestore:"uid"`
	Email       string `json:"email" firestore:"email"`
	DisplayName string `json:"display_name" firestore:"displayName"`
	Avatar      string `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Bio         string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Civility    string `json:"civility,omitempty" firestore:"civility,omitempty"`
	Phone       string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Age         int    `json:"age,omitempty" firestore:"age,omitempty"`
	Nationality string `json:"nationality,omitempty" firestore:"nationality,omitempty"`
	Role        string `json:"role" firestore:"role"` // "influencer", "client"

	// Push notification device token (Expo)
	ExpoToken string `json:"expo_token,omitempty" firestore:"expoToken,omitempty"`

	// Two-sided membership lists, mirrored on the event documents
	Favorites      []string `json:"favorites" firestore:"favorites"`
	Participations []string `json:"participations" firestore:"participations"`

	FollowersCount int `json:"followers_count,omitempty" firestore:"followersCount,omitempty"`
	PostsCount     int `json:"posts_count,omitempty" firestore:"postsCount,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
