package dto

import (
	"reviewio/internal/models"
	"reviewio/internal/services"
)

// InboxResponse is a list response that also carries the unopened count
// for the bell badge.
type InboxResponse struct {
	ListResponse[models.Notification]
	Unopened int64 `json:"unopened"`
}

func Inbox(in services.Inbox) InboxResponse {
	return InboxResponse{ListResponse: List(in.Page), Unopened: in.Unopened}
}

type OpenedResponse struct {
	Status   string `json:"status"`
	Modified int64  `json:"modified"`
}
