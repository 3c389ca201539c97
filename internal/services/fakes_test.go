package services

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/accessctx"
	m "reviewio/internal/models"
	"reviewio/internal/repository"
)

// memStore is an in-memory stand-in for the Mongo repositories.
type memStore struct {
	mu            sync.Mutex
	users         map[bson.ObjectID]*m.User
	posts         []m.Post
	comments      []m.Comment
	categories    []m.Category
	followers     map[bson.ObjectID][]bson.ObjectID
	notifications []m.Notification

	// failIndex makes InsertMany report these batch positions as failed.
	failIndex map[int]bool
	// failBatch makes the n-th InsertMany call (0-based) fail outright.
	failBatch map[int]bool
	batches   int
}

func newMemStore() *memStore {
	return &memStore{
		users:     map[bson.ObjectID]*m.User{},
		followers: map[bson.ObjectID][]bson.ObjectID{},
	}
}

func (s *memStore) addUser(name string) *m.User {
	u := &m.User{ID: bson.NewObjectID(), Username: name, Name: name, Active: true}
	s.users[u.ID] = u
	return u
}

func (s *memStore) FindAuthors(_ context.Context, c accessctx.Criteria) ([]bson.ObjectID, error) {
	var out []bson.ObjectID
	for i := range s.posts {
		if c.Matches(&s.posts[i]) {
			out = append(out, s.posts[i].User)
		}
	}
	return out, nil
}

func (s *memStore) FindPage(_ context.Context, c accessctx.Criteria, skip, limit int64) ([]m.Post, error) {
	var hits []m.Post
	for i := range s.posts {
		if c.Matches(&s.posts[i]) {
			hits = append(hits, s.posts[i])
		}
	}
	slices.SortFunc(hits, func(a, b m.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return bytes.Compare(b.ID[:], a.ID[:])
	})
	if skip >= int64(len(hits)) {
		return []m.Post{}, nil
	}
	end := min(skip+limit, int64(len(hits)))
	return hits[skip:end], nil
}

func (s *memStore) UsersByIDs(_ context.Context, ids []bson.ObjectID) (map[bson.ObjectID]*m.User, error) {
	out := map[bson.ObjectID]*m.User{}
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (s *memStore) ListByPosts(_ context.Context, ids []bson.ObjectID) (map[bson.ObjectID][]m.Comment, error) {
	out := map[bson.ObjectID][]m.Comment{}
	for _, c := range s.comments {
		if slices.Contains(ids, c.Post) {
			out[c.Post] = append(out[c.Post], c)
		}
	}
	return out, nil
}

func (s *memStore) FindBySlug(_ context.Context, slug string) (*m.Category, error) {
	for i := range s.categories {
		if s.categories[i].Slug == slug {
			return &s.categories[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memStore) Followers(_ context.Context, author bson.ObjectID) ([]bson.ObjectID, error) {
	return s.followers[author], nil
}

func (s *memStore) Insert(_ context.Context, n *m.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = bson.NewObjectID()
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *memStore) InsertMany(_ context.Context, docs []m.Notification) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	call := s.batches
	s.batches++
	if s.failBatch[call] {
		return nil, errors.New("connection reset")
	}
	var failed []int
	for i, d := range docs {
		if s.failIndex[i] {
			failed = append(failed, i)
			continue
		}
		d.ID = bson.NewObjectID()
		s.notifications = append(s.notifications, d)
	}
	return failed, nil
}

func (s *memStore) DeleteMatching(_ context.Context, from, to bson.ObjectID, typ m.NotiType, primary m.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = slices.DeleteFunc(s.notifications, func(n m.Notification) bool {
		return n.UserFrom == from && n.UserTo == to && n.Type == typ && n.Primary.ID == primary.ID
	})
	return nil
}

func (s *memStore) DeleteByRef(_ context.Context, ref m.Ref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = slices.DeleteFunc(s.notifications, func(n m.Notification) bool {
		return n.Primary.ID == ref.ID || (n.Secondary != nil && n.Secondary.ID == ref.ID)
	})
	return nil
}

func (s *memStore) notificationsOf(typ m.NotiType) []m.Notification {
	var out []m.Notification
	for _, n := range s.notifications {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}
