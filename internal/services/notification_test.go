package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	m "reviewio/internal/models"
)

func TestPostCreatedFansOutToFollowers(t *testing.T) {
	st := newMemStore()
	author := st.addUser("author")
	f1, f2, f3 := st.addUser("f1"), st.addUser("f2"), st.addUser("f3")
	st.followers[author.ID] = []bson.ObjectID{f1.ID, f2.ID, f3.ID}

	n := &Notifier{Store: st, Followers: st, BatchSize: 100}
	post := &m.Post{ID: bson.NewObjectID(), User: author.ID, Title: "hello"}

	res, err := n.PostCreated(context.Background(), post, author)
	require.NoError(t, err)
	assert.Equal(t, FanoutResult{Recipients: 3, Created: 3}, res)

	got := st.notificationsOf(m.NotiPost)
	require.Len(t, got, 3)
	recipients := map[bson.ObjectID]bool{}
	for _, n := range got {
		recipients[n.UserTo] = true
		assert.Equal(t, author.ID, n.UserFrom)
		assert.Equal(t, m.Ref{Kind: m.RefPost, ID: post.ID}, n.Primary)
		assert.Equal(t, "author shared a new post: hello", n.Message)
		assert.Equal(t, "/posts/"+post.ID.Hex(), n.Link)
		assert.False(t, n.Opened)
		assert.False(t, n.Read)
	}
	assert.Len(t, recipients, 3)
}

func TestPostCreatedWithoutFollowers(t *testing.T) {
	st := newMemStore()
	author := st.addUser("author")
	n := &Notifier{Store: st, Followers: st, BatchSize: 100}

	res, err := n.PostCreated(context.Background(), &m.Post{ID: bson.NewObjectID()}, author)
	require.NoError(t, err)
	assert.Equal(t, FanoutResult{}, res)
	assert.Empty(t, st.notifications)
	assert.Equal(t, 0, st.batches)
}

func TestPostCreatedIsolatesFailures(t *testing.T) {
	st := newMemStore()
	author := st.addUser("author")
	for range 3 {
		st.followers[author.ID] = append(st.followers[author.ID], st.addUser("f").ID)
	}
	st.failIndex = map[int]bool{1: true}

	n := &Notifier{Store: st, Followers: st, BatchSize: 100}
	res, err := n.PostCreated(context.Background(), &m.Post{ID: bson.NewObjectID()}, author)
	require.NoError(t, err)
	assert.Equal(t, FanoutResult{Recipients: 3, Created: 2, Failed: 1}, res)
	assert.Len(t, st.notifications, 2)
}

func TestPostCreatedContinuesAfterFailedBatch(t *testing.T) {
	st := newMemStore()
	author := st.addUser("author")
	for range 5 {
		st.followers[author.ID] = append(st.followers[author.ID], st.addUser("f").ID)
	}
	st.failBatch = map[int]bool{0: true}

	n := &Notifier{Store: st, Followers: st, BatchSize: 2}
	res, err := n.PostCreated(context.Background(), &m.Post{ID: bson.NewObjectID()}, author)
	require.NoError(t, err)
	assert.Equal(t, 3, st.batches)
	assert.Equal(t, FanoutResult{Recipients: 5, Created: 3, Failed: 2}, res)
}

func TestSingleNotificationsSkipSelf(t *testing.T) {
	st := newMemStore()
	author := st.addUser("author")
	n := &Notifier{Store: st, Followers: st}
	post := &m.Post{ID: bson.NewObjectID(), User: author.ID}

	require.NoError(t, n.PostLiked(context.Background(), author, post))
	require.NoError(t, n.CommentAdded(context.Background(), author, post, &m.Comment{ID: bson.NewObjectID()}))
	assert.Empty(t, st.notifications)
}

func TestLikeAndUnlikeNotification(t *testing.T) {
	st := newMemStore()
	author, fan := st.addUser("author"), st.addUser("fan")
	n := &Notifier{Store: st, Followers: st}
	post := &m.Post{ID: bson.NewObjectID(), User: author.ID}

	require.NoError(t, n.PostLiked(context.Background(), fan, post))
	got := st.notificationsOf(m.NotiLike)
	require.Len(t, got, 1)
	assert.Equal(t, author.ID, got[0].UserTo)
	assert.Equal(t, "fan liked your post", got[0].Message)

	require.NoError(t, n.PostUnliked(context.Background(), fan.ID, post))
	assert.Empty(t, st.notifications)
}

func TestCommentRemovedCascades(t *testing.T) {
	st := newMemStore()
	author, critic, fan := st.addUser("author"), st.addUser("critic"), st.addUser("fan")
	n := &Notifier{Store: st, Followers: st}
	post := &m.Post{ID: bson.NewObjectID(), User: author.ID}
	c := &m.Comment{ID: bson.NewObjectID(), Post: post.ID, User: critic.ID}

	require.NoError(t, n.CommentAdded(context.Background(), critic, post, c))
	require.NoError(t, n.CommentLiked(context.Background(), fan, c))
	require.Len(t, st.notifications, 2)

	require.NoError(t, n.CommentRemoved(context.Background(), c))
	assert.Empty(t, st.notifications)
}

func TestBuildMessage(t *testing.T) {
	msg, err := BuildMessage(m.NotiLike, NotiParams{Actor: "ann", On: m.RefComment})
	require.NoError(t, err)
	assert.Equal(t, "ann liked your comment", msg)

	_, err = BuildMessage("Poke", NotiParams{})
	assert.Error(t, err)
}
