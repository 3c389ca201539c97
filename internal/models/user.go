package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID             bson.ObjectID `bson:"_id,omitempty"         json:"id"`
	Name           string        `bson:"name"                  json:"name"`
	Username       string        `bson:"username"              json:"username"`
	Email          string        `bson:"email"                 json:"email"`
	PasswordHash   string        `bson:"password_hash"         json:"-"`
	Role           Role          `bson:"role"                  json:"role"`
	Bio            string        `bson:"bio,omitempty"         json:"bio,omitempty"`
	Active         bool          `bson:"active"                json:"active"`
	BanExpires     *time.Time    `bson:"ban_expires,omitempty" json:"banExpires,omitempty"`
	FollowersCount int64         `bson:"followers_count"       json:"followersCount"`
	FollowingCount int64         `bson:"following_count"       json:"followingCount"`
	CreatedAt      time.Time     `bson:"created_at"            json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at"            json:"updatedAt"`
}

// Banned reports whether a ban is still running at now.
func (u *User) Banned(now time.Time) bool {
	return u.BanExpires != nil && u.BanExpires.After(now)
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// UserSummary is the author block embedded in posts and comments.
type UserSummary struct {
	ID       bson.ObjectID `json:"id"`
	Name     string        `json:"name"`
	Username string        `json:"username"`
}

func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Name: u.Name, Username: u.Username}
}
