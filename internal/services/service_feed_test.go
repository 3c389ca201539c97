package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/accessctx"
	m "reviewio/internal/models"
	"reviewio/internal/pagination"
)

type feedEnv struct {
	store     *memStore
	svc       *FeedService
	community bson.ObjectID
	general   bson.ObjectID
	clock     time.Time
}

func newFeedEnv() *feedEnv {
	st := newMemStore()
	e := &feedEnv{
		store:     st,
		community: bson.NewObjectID(),
		general:   bson.NewObjectID(),
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	st.categories = []m.Category{
		{ID: e.community, Slug: "community"},
		{ID: e.general, Slug: "general", Genre: true},
	}
	e.svc = &FeedService{Posts: st, Users: st, Comments: st, Categories: st, Community: e.community}
	return e
}

func (e *feedEnv) post(author *m.User, category bson.ObjectID) m.Post {
	e.clock = e.clock.Add(time.Minute)
	p := m.Post{ID: bson.NewObjectID(), User: author.ID, Category: category, Active: true, CreatedAt: e.clock}
	e.store.posts = append(e.store.posts, p)
	return p
}

func viewerOf(u *m.User) *accessctx.ViewerAccess {
	return &accessctx.ViewerAccess{
		UserID:     u.ID,
		User:       u,
		Following:  accessctx.NewIDSet(),
		BlockTo:    accessctx.NewIDSet(),
		BlockFrom:  accessctx.NewIDSet(),
		Categories: accessctx.NewIDSet(),
	}
}

func TestHomeFeedPaginatesTwelvePosts(t *testing.T) {
	e := newFeedEnv()
	viewer, author := e.store.addUser("viewer"), e.store.addUser("author")
	for range 12 {
		e.post(author, e.general)
	}
	v := viewerOf(viewer)
	v.Following.Add(author.ID)

	ctx := context.Background()
	want := []struct {
		results int
		hasNext bool
	}{{5, true}, {5, true}, {2, false}}

	var seen []bson.ObjectID
	for i, w := range want {
		page, err := e.svc.Home(ctx, v, pagination.Params{Page: int64(i + 1), Limit: 5})
		require.NoError(t, err)
		assert.Len(t, page.Items, w.results, "page %d", i+1)
		assert.Equal(t, w.hasNext, page.HasNext, "page %d", i+1)
		assert.Equal(t, int64(12), page.Total, "page %d", i+1)
		for _, p := range page.Items {
			seen = append(seen, p.ID)
		}
	}
	assert.Len(t, unique(seen), 12)

	// newest first
	for i, id := range seen {
		assert.Equal(t, e.store.posts[11-i].ID, id)
	}
}

func TestHomeFeedDropsInactiveAuthors(t *testing.T) {
	e := newFeedEnv()
	viewer, live, gone := e.store.addUser("viewer"), e.store.addUser("live"), e.store.addUser("gone")
	e.post(live, e.general)
	e.post(gone, e.general)
	gone.Active = false

	v := viewerOf(viewer)
	v.Following.Add(live.ID)
	v.Following.Add(gone.ID)

	page, err := e.svc.Home(context.Background(), v, pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, live.ID, page.Items[0].User)
	assert.Equal(t, int64(1), page.Total)
	assert.False(t, page.HasNext)
}

func TestHomeFeedCommunityCategory(t *testing.T) {
	e := newFeedEnv()
	viewer, followed, stranger := e.store.addUser("viewer"), e.store.addUser("followed"), e.store.addUser("stranger")
	e.post(followed, e.community)
	e.post(viewer, e.community)
	strangerPost := e.post(stranger, e.community)

	v := viewerOf(viewer)
	v.Following.Add(followed.ID)

	page, err := e.svc.Home(context.Background(), v, pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.Total)

	v.Categories.Add(e.community)
	page, err = e.svc.Home(context.Background(), v, pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, strangerPost.ID, page.Items[0].ID)
}

func TestFollowThenBlockRemovesPost(t *testing.T) {
	e := newFeedEnv()
	a, b := e.store.addUser("a"), e.store.addUser("b")
	e.post(b, e.general)

	va := viewerOf(a)
	va.Following.Add(b.ID)
	page, err := e.svc.Home(context.Background(), va, pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	// A blocks B: the follow edge goes away and the block applies.
	delete(va.Following, b.ID)
	va.BlockTo.Add(b.ID)
	page, err = e.svc.Home(context.Background(), va, pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	// B no longer sees A's content either.
	e.post(a, e.general)
	vb := viewerOf(b)
	vb.BlockFrom.Add(a.ID)
	vb.Categories.Add(e.general)
	page, err = e.svc.Home(context.Background(), vb, pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	for _, p := range page.Items {
		assert.NotEqual(t, a.ID, p.User)
	}
}

func TestFeedFiltersCommentsFromBlockedUsers(t *testing.T) {
	e := newFeedEnv()
	viewer, author := e.store.addUser("viewer"), e.store.addUser("author")
	c1, c2, blocked := e.store.addUser("c1"), e.store.addUser("c2"), e.store.addUser("blocked")
	p := e.post(author, e.general)
	for _, u := range []*m.User{c1, blocked, c2} {
		e.store.comments = append(e.store.comments, m.Comment{ID: bson.NewObjectID(), Post: p.ID, User: u.ID, Text: u.Username})
	}

	v := viewerOf(viewer)
	v.Following.Add(author.ID)
	v.BlockTo.Add(blocked.ID)

	page, err := e.svc.Home(context.Background(), v, pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	got := page.Items[0]
	assert.Equal(t, 2, got.CommentCount)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "c1", got.Comments[0].Author.Username)
	assert.Equal(t, "c2", got.Comments[1].Author.Username)
	assert.Equal(t, "author", got.Author.Username)
}

func TestCategoryFeed(t *testing.T) {
	e := newFeedEnv()
	viewer, stranger := e.store.addUser("viewer"), e.store.addUser("stranger")
	e.post(stranger, e.general)
	e.post(stranger, e.community)

	page, err := e.svc.Category(context.Background(), viewerOf(viewer), "general", pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, e.general, page.Items[0].Category)

	_, err = e.svc.Category(context.Background(), viewerOf(viewer), "missing", pagination.Params{Page: 1, Limit: 5})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestByUserAndSaved(t *testing.T) {
	e := newFeedEnv()
	viewer, author := e.store.addUser("viewer"), e.store.addUser("author")
	p := e.post(author, e.community)
	e.store.posts[0].Saves = []bson.ObjectID{viewer.ID}
	e.store.posts[0].Likes = []bson.ObjectID{viewer.ID}

	page, err := e.svc.ByUser(context.Background(), viewerOf(viewer), author.ID, pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, p.ID, page.Items[0].ID)
	assert.True(t, page.Items[0].Liked)
	assert.True(t, page.Items[0].Saved)

	saved, err := e.svc.Saved(context.Background(), viewerOf(viewer), pagination.Params{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, saved.Items, 1)

	_, err = e.svc.ByUser(context.Background(), viewerOf(viewer), bson.NewObjectID(), pagination.Params{Page: 1, Limit: 5})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
