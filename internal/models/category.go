package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Ancestor struct {
	ID   bson.ObjectID `bson:"_id"  json:"id"`
	Name string        `bson:"name" json:"name"`
	Slug string        `bson:"slug" json:"slug"`
}

type Category struct {
	ID        bson.ObjectID  `bson:"_id,omitempty"    json:"id"`
	Name      string         `bson:"name"             json:"name"`
	Slug      string         `bson:"slug"             json:"slug"`
	Parent    *bson.ObjectID `bson:"parent,omitempty" json:"parent,omitempty"`
	Ancestors []Ancestor     `bson:"ancestors"        json:"ancestors"`
	Genre     bool           `bson:"genre"            json:"genre"`
	Followers int64          `bson:"followers"        json:"followers"`
	NumPosts  int64          `bson:"num_posts"        json:"numPosts"`
	CreatedAt time.Time      `bson:"created_at"       json:"createdAt"`
}

// AsAncestor returns the entry children append to their ancestor path.
func (c *Category) AsAncestor() Ancestor {
	return Ancestor{ID: c.ID, Name: c.Name, Slug: c.Slug}
}
