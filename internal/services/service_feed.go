package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/accessctx"
	"reviewio/internal/metrics"
	m "reviewio/internal/models"
	"reviewio/internal/pagination"
)

type PostQuerier interface {
	FindAuthors(ctx context.Context, c accessctx.Criteria) ([]bson.ObjectID, error)
	FindPage(ctx context.Context, c accessctx.Criteria, skip, limit int64) ([]m.Post, error)
}

type UserDirectory interface {
	UsersByIDs(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*m.User, error)
}

type CommentLister interface {
	ListByPosts(ctx context.Context, posts []bson.ObjectID) (map[bson.ObjectID][]m.Comment, error)
}

type CategoryLookup interface {
	FindBySlug(ctx context.Context, slug string) (*m.Category, error)
}

// FeedService assembles visibility-filtered post lists.
type FeedService struct {
	Posts      PostQuerier
	Users      UserDirectory
	Comments   CommentLister
	Categories CategoryLookup
	Community  bson.ObjectID
}

type FeedPage = pagination.Page[m.FeedPost]

func (s *FeedService) Home(ctx context.Context, v *accessctx.ViewerAccess, p pagination.Params) (FeedPage, error) {
	return s.run(ctx, "home", v, v.FeedCriteria(s.Community), p)
}

func (s *FeedService) Category(ctx context.Context, v *accessctx.ViewerAccess, slug string, p pagination.Params) (FeedPage, error) {
	cat, err := s.Categories.FindBySlug(ctx, slug)
	if err != nil {
		return FeedPage{}, notFound(err, ErrCategoryNotFound)
	}
	return s.run(ctx, "category", v, v.CategoryCriteria(cat.ID), p)
}

// ByUser lists one author's posts. Blocked authors yield an empty page.
func (s *FeedService) ByUser(ctx context.Context, v *accessctx.ViewerAccess, author bson.ObjectID, p pagination.Params) (FeedPage, error) {
	users, err := s.Users.UsersByIDs(ctx, []bson.ObjectID{author})
	if err != nil {
		return FeedPage{}, err
	}
	if u := users[author]; u == nil || !u.Active {
		return FeedPage{}, ErrUserNotFound
	}
	return s.run(ctx, "user", v, v.AuthorCriteria(author), p)
}

func (s *FeedService) Saved(ctx context.Context, v *accessctx.ViewerAccess, p pagination.Params) (FeedPage, error) {
	return s.run(ctx, "saved", v, v.SavedCriteria(), p)
}

// run executes c twice: once unpaginated for the total and once for the
// page. Both results drop posts whose author account is inactive.
func (s *FeedService) run(ctx context.Context, kind string, v *accessctx.ViewerAccess, c accessctx.Criteria, p pagination.Params) (FeedPage, error) {
	start := time.Now()
	defer func() {
		metrics.FeedQueries.WithLabelValues(kind).Inc()
		metrics.FeedDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	}()

	authors, err := s.Posts.FindAuthors(ctx, c)
	if err != nil {
		return FeedPage{}, err
	}
	directory, err := s.Users.UsersByIDs(ctx, unique(authors))
	if err != nil {
		return FeedPage{}, err
	}
	var total int64
	for _, a := range authors {
		if isActive(directory[a]) {
			total++
		}
	}

	page, err := s.Posts.FindPage(ctx, c, p.Skip(), p.Limit)
	if err != nil {
		return FeedPage{}, err
	}
	if err := s.fillDirectory(ctx, directory, page); err != nil {
		return FeedPage{}, err
	}
	visible := make([]m.Post, 0, len(page))
	for _, post := range page {
		if isActive(directory[post.User]) {
			visible = append(visible, post)
		}
	}

	items, err := s.assemble(ctx, v, visible, directory)
	if err != nil {
		return FeedPage{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

// Assemble renders posts for v: authors resolved, comments filtered, like
// and save flags set.
func (s *FeedService) Assemble(ctx context.Context, v *accessctx.ViewerAccess, posts []m.Post) ([]m.FeedPost, error) {
	directory := map[bson.ObjectID]*m.User{}
	if err := s.fillDirectory(ctx, directory, posts); err != nil {
		return nil, err
	}
	return s.assemble(ctx, v, posts, directory)
}

func (s *FeedService) assemble(ctx context.Context, v *accessctx.ViewerAccess, posts []m.Post, directory map[bson.ObjectID]*m.User) ([]m.FeedPost, error) {
	ids := make([]bson.ObjectID, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}
	byPost, err := s.Comments.ListByPosts(ctx, ids)
	if err != nil {
		return nil, err
	}

	filtered := make(map[bson.ObjectID][]m.Comment, len(byPost))
	var commenters []bson.ObjectID
	for id, cs := range byPost {
		kept := v.FilterComments(cs)
		filtered[id] = kept
		for _, c := range kept {
			if _, ok := directory[c.User]; !ok {
				commenters = append(commenters, c.User)
			}
		}
	}
	if len(commenters) > 0 {
		more, err := s.Users.UsersByIDs(ctx, unique(commenters))
		if err != nil {
			return nil, err
		}
		for id, u := range more {
			directory[id] = u
		}
	}

	out := make([]m.FeedPost, 0, len(posts))
	for _, p := range posts {
		comments := make([]m.FeedComment, 0, len(filtered[p.ID]))
		for _, c := range filtered[p.ID] {
			comments = append(comments, m.FeedComment{Comment: c, Author: directory[c.User].Summary()})
		}
		out = append(out, m.FeedPost{
			Post:         p,
			Author:       directory[p.User].Summary(),
			Comments:     comments,
			CommentCount: len(comments),
			Liked:        m.Contains(p.Likes, v.UserID),
			Saved:        m.Contains(p.Saves, v.UserID),
		})
	}
	return out, nil
}

// fillDirectory loads authors of posts missing from directory.
func (s *FeedService) fillDirectory(ctx context.Context, directory map[bson.ObjectID]*m.User, posts []m.Post) error {
	var missing []bson.ObjectID
	for _, p := range posts {
		if _, ok := directory[p.User]; !ok {
			missing = append(missing, p.User)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	more, err := s.Users.UsersByIDs(ctx, unique(missing))
	if err != nil {
		return err
	}
	for id, u := range more {
		directory[id] = u
	}
	return nil
}

func isActive(u *m.User) bool { return u != nil && u.Active }

func unique(ids []bson.ObjectID) []bson.ObjectID {
	seen := make(map[bson.ObjectID]struct{}, len(ids))
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
