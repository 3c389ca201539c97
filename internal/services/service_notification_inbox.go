package services

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	m "reviewio/internal/models"
	"reviewio/internal/pagination"
	"reviewio/internal/repository"
)

// InboxService serves a user's own notifications.
type InboxService struct {
	Notifications *repository.NotificationRepository
}

type Inbox struct {
	pagination.Page[m.Notification]
	Unopened int64
}

func (s *InboxService) List(ctx context.Context, user bson.ObjectID, p pagination.Params) (Inbox, error) {
	items, err := s.Notifications.ListForUser(ctx, user, p.Skip(), p.Limit)
	if err != nil {
		return Inbox{}, err
	}
	total, err := s.Notifications.CountForUser(ctx, user)
	if err != nil {
		return Inbox{}, err
	}
	unopened, err := s.Notifications.CountUnopened(ctx, user)
	if err != nil {
		return Inbox{}, err
	}
	return Inbox{Page: pagination.NewPage(items, total, p), Unopened: unopened}, nil
}

func (s *InboxService) Read(ctx context.Context, user, id bson.ObjectID) (*m.Notification, error) {
	n, err := s.Notifications.MarkRead(ctx, id, user)
	return n, notFound(err, ErrNotiNotFound)
}

func (s *InboxService) OpenAll(ctx context.Context, user bson.ObjectID) (int64, error) {
	return s.Notifications.MarkAllOpened(ctx, user)
}

func (s *InboxService) Delete(ctx context.Context, user, id bson.ObjectID) error {
	return notFound(s.Notifications.Delete(ctx, id, user), ErrNotiNotFound)
}
