package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a person who can coach and/or learn topics.
// Meetups holds meetup ids only; meetups are looked up through the meetup store.
type User struct {
	ID            string
	Name          string
	TopicsTaught  TopicSet
	TopicsLearned TopicSet
	Meetups       []string
}

// Teaches reports whether the user can coach topic.
func (u *User) Teaches(topic string) bool {
	return u.TopicsTaught.Has(topic)
}

// Learns reports whether the user wants to learn topic.
func (u *User) Learns(topic string) bool {
	return u.TopicsLearned.Has(topic)
}

// Identity is the credential record behind a User.
type Identity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	UserID       string    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
