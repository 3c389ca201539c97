package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type NotiType string

const (
	NotiPost    NotiType = "Post"
	NotiComment NotiType = "Comment"
	NotiLike    NotiType = "Like"
)

type RefKind string

const (
	RefPost    RefKind = "Post"
	RefComment RefKind = "Comment"
)

// Ref points at the entity a notification is about.
type Ref struct {
	Kind RefKind       `bson:"kind" json:"kind"`
	ID   bson.ObjectID `bson:"id"   json:"id"`
}

type Notification struct {
	ID        bson.ObjectID `bson:"_id,omitempty"       json:"id"`
	UserFrom  bson.ObjectID `bson:"user_from"           json:"userFrom"`
	UserTo    bson.ObjectID `bson:"user_to"             json:"userTo"`
	Primary   Ref           `bson:"primary"             json:"primary"`
	Secondary *Ref          `bson:"secondary,omitempty" json:"secondary,omitempty"`
	Type      NotiType      `bson:"type"                json:"type"`
	Opened    bool          `bson:"opened"              json:"opened"`
	Read      bool          `bson:"read"                json:"read"`
	Message   string        `bson:"message"             json:"message"`
	Link      string        `bson:"link"                json:"link"`
	CreatedAt time.Time     `bson:"created_at"          json:"createdAt"`
}
