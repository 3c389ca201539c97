package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ReportStatus string

const (
	ReportOpen   ReportStatus = "open"
	ReportReview ReportStatus = "review"
	ReportClosed ReportStatus = "closed"
)

type ReportAction string

const (
	ActionNone   ReportAction = "none"
	ActionWarn   ReportAction = "warn"
	ActionDelete ReportAction = "delete"
	ActionBan    ReportAction = "ban"
)

type ItemType string

const (
	ItemPost    ItemType = "Post"
	ItemComment ItemType = "Comment"
	ItemUser    ItemType = "User"
)

type Report struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserFrom   bson.ObjectID `bson:"user_from"     json:"userFrom"`
	UserTo     bson.ObjectID `bson:"user_to"       json:"userTo"`
	ItemID     bson.ObjectID `bson:"item_id"       json:"itemId"`
	ItemType   ItemType      `bson:"item_type"     json:"itemType"`
	ReportType string        `bson:"report_type"   json:"reportType"`
	Message    string        `bson:"message"       json:"message"`
	Status     ReportStatus  `bson:"status"        json:"status"`
	Action     ReportAction  `bson:"action"        json:"action"`
	CreatedAt  time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt  time.Time     `bson:"updated_at"    json:"updatedAt"`
}
