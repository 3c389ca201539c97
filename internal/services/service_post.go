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

type PostService struct {
	Posts      *repository.PostRepository
	Categories *repository.CategoryRepository
	Users      *repository.UserRepository
	Notifier   *Notifier
	Feed       *FeedService
	Masker     *utils.Masker
}

type PostInput struct {
	Title    string
	Text     string
	Link     string
	Category bson.ObjectID
}

// Create stores the post and then notifies the author's followers. The post
// stands even if every notification fails.
func (s *PostService) Create(ctx context.Context, v *accessctx.ViewerAccess, in PostInput) (*m.Post, FanoutResult, error) {
	if _, err := s.Categories.FindByID(ctx, in.Category); err != nil {
		return nil, FanoutResult{}, notFound(err, ErrCategoryNotFound)
	}
	p := &m.Post{
		User:     v.UserID,
		Category: in.Category,
		Title:    s.Masker.Mask(in.Title),
		Text:     s.Masker.Mask(in.Text),
		Link:     in.Link,
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, FanoutResult{}, err
	}

	log := logging.Ctx(ctx)
	if err := s.Categories.Inc(ctx, in.Category, "num_posts", 1); err != nil {
		log.Error().Err(err).Str("category", in.Category.Hex()).Msg("num_posts increment failed")
	}

	res, err := s.Notifier.PostCreated(ctx, p, v.User)
	if err != nil {
		log.Error().Err(err).Str("post", p.ID.Hex()).Msg("post fan-out failed")
	}
	log.Info().
		Str("post", p.ID.Hex()).
		Int("recipients", res.Recipients).
		Int("notified", res.Created).
		Int("failed", res.Failed).
		Msg("post created")
	return p, res, nil
}

// visiblePost loads an active post whose author is active and visible to v.
func (s *PostService) visiblePost(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) (*m.Post, error) {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	if !v.CanSee(p.User) {
		return nil, ErrPostNotFound
	}
	author, err := s.Users.FindByID(ctx, p.User)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	if !author.Active {
		return nil, ErrPostNotFound
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) (*m.FeedPost, error) {
	p, err := s.visiblePost(ctx, v, id)
	if err != nil {
		return nil, err
	}
	out, err := s.Feed.Assemble(ctx, v, []m.Post{*p})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

type PostUpdate struct {
	Title *string
	Text  *string
	Link  *string
}

// Update is limited to the author.
func (s *PostService) Update(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID, in PostUpdate) (*m.Post, error) {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	if p.User != v.UserID {
		return nil, ErrNotOwner
	}
	set := bson.M{}
	if in.Title != nil {
		set["title"] = s.Masker.Mask(*in.Title)
	}
	if in.Text != nil {
		set["text"] = s.Masker.Mask(*in.Text)
	}
	if in.Link != nil {
		set["link"] = *in.Link
	}
	updated, err := s.Posts.Update(ctx, id, set)
	return updated, notFound(err, ErrPostNotFound)
}

// Delete soft-deletes a post. Its author or an admin may do it.
func (s *PostService) Delete(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) error {
	p, err := s.Posts.FindByID(ctx, id)
	if err != nil {
		return notFound(err, ErrPostNotFound)
	}
	if !v.CanModify(p.User) {
		return ErrNotOwner
	}
	return s.remove(ctx, p)
}

func (s *PostService) remove(ctx context.Context, p *m.Post) error {
	if err := s.Posts.SoftDelete(ctx, p.ID); err != nil {
		return notFound(err, ErrPostNotFound)
	}
	log := logging.Ctx(ctx)
	if err := s.Categories.Inc(ctx, p.Category, "num_posts", -1); err != nil {
		log.Error().Err(err).Str("category", p.Category.Hex()).Msg("num_posts decrement failed")
	}
	if err := s.Notifier.PostRemoved(ctx, p); err != nil {
		log.Error().Err(err).Str("post", p.ID.Hex()).Msg("notification cleanup failed")
	}
	return nil
}

// Like adds the viewer to the likes set and returns the new set. A second
// like is rejected, not ignored.
func (s *PostService) Like(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) ([]bson.ObjectID, error) {
	if _, err := s.visiblePost(ctx, v, id); err != nil {
		return nil, err
	}
	p, err := s.Posts.AddLike(ctx, id, v.UserID)
	if err != nil {
		return nil, toggleErr(err, ErrAlreadyLiked)
	}
	if err := s.Notifier.PostLiked(ctx, v.User, p); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("post", id.Hex()).Msg("like notification failed")
	}
	return p.Likes, nil
}

func (s *PostService) Unlike(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) ([]bson.ObjectID, error) {
	p, err := s.Posts.RemoveLike(ctx, id, v.UserID)
	if err != nil {
		return nil, toggleErr(err, ErrNotLiked)
	}
	if err := s.Notifier.PostUnliked(ctx, v.UserID, p); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("post", id.Hex()).Msg("like notification cleanup failed")
	}
	return p.Likes, nil
}

func (s *PostService) Save(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) ([]bson.ObjectID, error) {
	if _, err := s.visiblePost(ctx, v, id); err != nil {
		return nil, err
	}
	p, err := s.Posts.AddSave(ctx, id, v.UserID)
	if err != nil {
		return nil, toggleErr(err, ErrAlreadySaved)
	}
	return p.Saves, nil
}

func (s *PostService) Unsave(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) ([]bson.ObjectID, error) {
	p, err := s.Posts.RemoveSave(ctx, id, v.UserID)
	if err != nil {
		return nil, toggleErr(err, ErrNotSaved)
	}
	return p.Saves, nil
}

func toggleErr(err error, noChange error) error {
	switch {
	case errors.Is(err, repository.ErrNoChange):
		return noChange
	case errors.Is(err, repository.ErrNotFound):
		return ErrPostNotFound
	}
	return err
}
