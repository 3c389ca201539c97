package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Post struct {
	ID        bson.ObjectID   `bson:"_id,omitempty"  json:"id"`
	User      bson.ObjectID   `bson:"user"           json:"user"`
	Category  bson.ObjectID   `bson:"category"       json:"category"`
	Title     string          `bson:"title"          json:"title"`
	Text      string          `bson:"text,omitempty" json:"text,omitempty"`
	Link      string          `bson:"link,omitempty" json:"link,omitempty"`
	Likes     []bson.ObjectID `bson:"likes"          json:"likes"`
	LikeCount int64           `bson:"like_count"     json:"likeCount"`
	Saves     []bson.ObjectID `bson:"saves"          json:"-"`
	SaveCount int64           `bson:"save_count"     json:"saveCount"`
	Active    bool            `bson:"active"         json:"-"`
	CreatedAt time.Time       `bson:"created_at"     json:"createdAt"`
	UpdatedAt time.Time       `bson:"updated_at"     json:"updatedAt"`
}

type Comment struct {
	ID        bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Post      bson.ObjectID   `bson:"post"          json:"post"`
	User      bson.ObjectID   `bson:"user"          json:"user"`
	Text      string          `bson:"text"          json:"text"`
	Likes     []bson.ObjectID `bson:"likes"         json:"likes"`
	LikeCount int64           `bson:"like_count"    json:"likeCount"`
	CreatedAt time.Time       `bson:"created_at"    json:"createdAt"`
	UpdatedAt time.Time       `bson:"updated_at"    json:"updatedAt"`
}

// Contains reports whether id is in ids.
func Contains(ids []bson.ObjectID, id bson.ObjectID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
