package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/logging"
	"reviewio/internal/metrics"
	m "reviewio/internal/models"
)

type NotificationStore interface {
	Insert(ctx context.Context, n *m.Notification) error
	InsertMany(ctx context.Context, docs []m.Notification) (failed []int, err error)
	DeleteMatching(ctx context.Context, from, to bson.ObjectID, typ m.NotiType, primary m.Ref) error
	DeleteByRef(ctx context.Context, ref m.Ref) error
}

type FollowerSource interface {
	Followers(ctx context.Context, author bson.ObjectID) ([]bson.ObjectID, error)
}

type NotiParams struct {
	Actor string
	Title string
	On    m.RefKind
}

func BuildMessage(t m.NotiType, p NotiParams) (string, error) {
	switch t {
	case m.NotiPost:
		if p.Title == "" {
			return fmt.Sprintf("%s shared a new post", p.Actor), nil
		}
		return fmt.Sprintf("%s shared a new post: %s", p.Actor, p.Title), nil
	case m.NotiComment:
		return fmt.Sprintf("%s commented on your post", p.Actor), nil
	case m.NotiLike:
		if p.On == m.RefComment {
			return fmt.Sprintf("%s liked your comment", p.Actor), nil
		}
		return fmt.Sprintf("%s liked your post", p.Actor), nil
	}
	return "", fmt.Errorf("unknown notification type: %s", t)
}

func postLink(id bson.ObjectID) string { return "/posts/" + id.Hex() }

// FanoutResult summarises one post-creation fan-out.
type FanoutResult struct {
	Recipients int `json:"recipients"`
	Created    int `json:"created"`
	Failed     int `json:"failed"`
}

// Notifier writes notifications synchronously with the action that causes
// them. Fan-out failures are logged and counted; they never undo the action.
type Notifier struct {
	Store     NotificationStore
	Followers FollowerSource
	BatchSize int
}

// PostCreated notifies every follower of author. Recipients are split into
// batches; a failed write in one batch does not affect the other writes.
// Missed notifications are not retried.
func (n *Notifier) PostCreated(ctx context.Context, post *m.Post, author *m.User) (FanoutResult, error) {
	followers, err := n.Followers.Followers(ctx, author.ID)
	if err != nil {
		return FanoutResult{}, fmt.Errorf("load followers: %w", err)
	}
	res := FanoutResult{Recipients: len(followers)}
	if len(followers) == 0 {
		return res, nil
	}

	msg, err := BuildMessage(m.NotiPost, NotiParams{Actor: author.Username, Title: post.Title})
	if err != nil {
		return res, err
	}

	now := time.Now().UTC()
	tasks := make([]m.Notification, 0, len(followers))
	for _, uid := range followers {
		tasks = append(tasks, m.Notification{
			UserFrom:  author.ID,
			UserTo:    uid,
			Primary:   m.Ref{Kind: m.RefPost, ID: post.ID},
			Type:      m.NotiPost,
			Message:   msg,
			Link:      postLink(post.ID),
			CreatedAt: now,
		})
	}

	size := n.BatchSize
	if size < 1 {
		size = len(tasks)
	}
	log := logging.Ctx(ctx)
	for start := 0; start < len(tasks); start += size {
		batch := tasks[start:min(start+size, len(tasks))]

		failed, err := n.Store.InsertMany(ctx, batch)
		if err != nil {
			log.Error().Err(err).
				Str("post", post.ID.Hex()).
				Int("batch_start", start).
				Int("batch_size", len(batch)).
				Msg("notification batch failed")
			res.Failed += len(batch)
			continue
		}
		for _, i := range failed {
			log.Warn().
				Str("post", post.ID.Hex()).
				Str("recipient", batch[i].UserTo.Hex()).
				Msg("notification insert failed")
		}
		res.Failed += len(failed)
		res.Created += len(batch) - len(failed)
	}

	metrics.NotificationsCreated.WithLabelValues(string(m.NotiPost)).Add(float64(res.Created))
	if res.Failed > 0 {
		metrics.NotificationsFailed.WithLabelValues(string(m.NotiPost)).Add(float64(res.Failed))
	}
	return res, nil
}

// notifyOne writes a single notification unless the actor is the recipient.
func (n *Notifier) notifyOne(ctx context.Context, doc *m.Notification, p NotiParams) error {
	if doc.UserFrom == doc.UserTo {
		return nil
	}
	msg, err := BuildMessage(doc.Type, p)
	if err != nil {
		return err
	}
	doc.Message = msg
	doc.CreatedAt = time.Now().UTC()
	if err := n.Store.Insert(ctx, doc); err != nil {
		metrics.NotificationsFailed.WithLabelValues(string(doc.Type)).Inc()
		return err
	}
	metrics.NotificationsCreated.WithLabelValues(string(doc.Type)).Inc()
	return nil
}

func (n *Notifier) PostLiked(ctx context.Context, actor *m.User, post *m.Post) error {
	return n.notifyOne(ctx, &m.Notification{
		UserFrom: actor.ID,
		UserTo:   post.User,
		Primary:  m.Ref{Kind: m.RefPost, ID: post.ID},
		Type:     m.NotiLike,
		Link:     postLink(post.ID),
	}, NotiParams{Actor: actor.Username, On: m.RefPost})
}

func (n *Notifier) PostUnliked(ctx context.Context, actor bson.ObjectID, post *m.Post) error {
	return n.Store.DeleteMatching(ctx, actor, post.User, m.NotiLike, m.Ref{Kind: m.RefPost, ID: post.ID})
}

func (n *Notifier) CommentAdded(ctx context.Context, actor *m.User, post *m.Post, c *m.Comment) error {
	return n.notifyOne(ctx, &m.Notification{
		UserFrom:  actor.ID,
		UserTo:    post.User,
		Primary:   m.Ref{Kind: m.RefPost, ID: post.ID},
		Secondary: &m.Ref{Kind: m.RefComment, ID: c.ID},
		Type:      m.NotiComment,
		Link:      postLink(post.ID),
	}, NotiParams{Actor: actor.Username})
}

// CommentRemoved deletes every notification that points at the comment.
func (n *Notifier) CommentRemoved(ctx context.Context, c *m.Comment) error {
	return n.Store.DeleteByRef(ctx, m.Ref{Kind: m.RefComment, ID: c.ID})
}

func (n *Notifier) CommentLiked(ctx context.Context, actor *m.User, c *m.Comment) error {
	return n.notifyOne(ctx, &m.Notification{
		UserFrom:  actor.ID,
		UserTo:    c.User,
		Primary:   m.Ref{Kind: m.RefComment, ID: c.ID},
		Secondary: &m.Ref{Kind: m.RefPost, ID: c.Post},
		Type:      m.NotiLike,
		Link:      postLink(c.Post),
	}, NotiParams{Actor: actor.Username, On: m.RefComment})
}

func (n *Notifier) CommentUnliked(ctx context.Context, actor bson.ObjectID, c *m.Comment) error {
	return n.Store.DeleteMatching(ctx, actor, c.User, m.NotiLike, m.Ref{Kind: m.RefComment, ID: c.ID})
}

// PostRemoved deletes notifications that point at a deleted post.
func (n *Notifier) PostRemoved(ctx context.Context, post *m.Post) error {
	return n.Store.DeleteByRef(ctx, m.Ref{Kind: m.RefPost, ID: post.ID})
}
