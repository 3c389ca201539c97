package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/accessctx"
	"reviewio/internal/logging"
	m "reviewio/internal/models"
	"reviewio/internal/repository"
	"reviewio/utils"
)

type CommentService struct {
	Comments *repository.CommentRepository
	Posts    *PostService
	Users    *repository.UserRepository
	Notifier *Notifier
	Masker   *utils.Masker
}

// List returns the post's comments with blocked authors removed.
func (s *CommentService) List(ctx context.Context, v *accessctx.ViewerAccess, postID bson.ObjectID) ([]m.FeedComment, error) {
	if _, err := s.Posts.visiblePost(ctx, v, postID); err != nil {
		return nil, err
	}
	all, err := s.Comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	kept := v.FilterComments(all)

	ids := make([]bson.ObjectID, 0, len(kept))
	for _, c := range kept {
		ids = append(ids, c.User)
	}
	authors, err := s.Users.UsersByIDs(ctx, unique(ids))
	if err != nil {
		return nil, err
	}
	out := make([]m.FeedComment, 0, len(kept))
	for _, c := range kept {
		out = append(out, m.FeedComment{Comment: c, Author: authors[c.User].Summary()})
	}
	return out, nil
}

// Create adds a comment, notifies the post author and returns the post's
// full comment list. The list is not filtered for the viewer.
func (s *CommentService) Create(ctx context.Context, v *accessctx.ViewerAccess, postID bson.ObjectID, text string) ([]m.Comment, error) {
	post, err := s.Posts.visiblePost(ctx, v, postID)
	if err != nil {
		return nil, err
	}
	c := &m.Comment{Post: postID, User: v.UserID, Text: s.Masker.Mask(text)}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	if err := s.Notifier.CommentAdded(ctx, v.User, post, c); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("comment", c.ID.Hex()).Msg("comment notification failed")
	}
	return s.Comments.ListByPost(ctx, postID)
}

func (s *CommentService) find(ctx context.Context, postID, commentID bson.ObjectID) (*m.Comment, error) {
	c, err := s.Comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, notFound(err, ErrCommentNotFound)
	}
	if c.Post != postID {
		return nil, ErrCommentNotFound
	}
	return c, nil
}

// Delete hard-deletes the comment and every notification pointing at it.
// The comment's author or an admin may do it.
func (s *CommentService) Delete(ctx context.Context, v *accessctx.ViewerAccess, postID, commentID bson.ObjectID) error {
	c, err := s.find(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if !v.CanModify(c.User) {
		return ErrNotOwner
	}
	return s.remove(ctx, c)
}

func (s *CommentService) remove(ctx context.Context, c *m.Comment) error {
	if err := s.Comments.Delete(ctx, c.ID); err != nil {
		return notFound(err, ErrCommentNotFound)
	}
	if err := s.Notifier.CommentRemoved(ctx, c); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("comment", c.ID.Hex()).Msg("notification cascade failed")
	}
	return nil
}

func (s *CommentService) Like(ctx context.Context, v *accessctx.ViewerAccess, postID, commentID bson.ObjectID) ([]bson.ObjectID, error) {
	c, err := s.find(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if !v.CanSee(c.User) {
		return nil, ErrCommentNotFound
	}
	updated, err := s.Comments.AddLike(ctx, commentID, v.UserID)
	if err != nil {
		return nil, commentToggleErr(err, ErrCommentLiked)
	}
	if err := s.Notifier.CommentLiked(ctx, v.User, updated); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("comment", commentID.Hex()).Msg("like notification failed")
	}
	return updated.Likes, nil
}

func (s *CommentService) Unlike(ctx context.Context, v *accessctx.ViewerAccess, postID, commentID bson.ObjectID) ([]bson.ObjectID, error) {
	if _, err := s.find(ctx, postID, commentID); err != nil {
		return nil, err
	}
	updated, err := s.Comments.RemoveLike(ctx, commentID, v.UserID)
	if err != nil {
		return nil, commentToggleErr(err, ErrCommentNotLiked)
	}
	if err := s.Notifier.CommentUnliked(ctx, v.UserID, updated); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("comment", commentID.Hex()).Msg("like notification cleanup failed")
	}
	return updated.Likes, nil
}

func commentToggleErr(err error, noChange error) error {
	switch {
	case errors.Is(err, repository.ErrNoChange):
		return noChange
	case errors.Is(err, repository.ErrNotFound):
		return ErrCommentNotFound
	}
	return err
}
