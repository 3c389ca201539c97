package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type RelType string

const (
	RelFollow   RelType = "follow"
	RelBlock    RelType = "block"
	RelCategory RelType = "category"
)

// Relationship is one directed edge. Subject is always a user; Object is a
// user for follow/block and a category for category subscriptions.
// A block edge is read from both ends: the subject's block_to and the
// object's block_from.
type Relationship struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject   bson.ObjectID `bson:"subject"       json:"subject"`
	Object    bson.ObjectID `bson:"object"        json:"object"`
	Type      RelType       `bson:"type"          json:"type"`
	CreatedAt time.Time     `bson:"created_at"    json:"createdAt"`
}
