package accessctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/models"
)

type feedFixture struct {
	viewer, followed, stranger, blocked, blocker bson.ObjectID
	community, subscribed, other                 bson.ObjectID
	v                                            *ViewerAccess
}

func newFeedFixture() feedFixture {
	f := feedFixture{
		viewer:     bson.NewObjectID(),
		followed:   bson.NewObjectID(),
		stranger:   bson.NewObjectID(),
		blocked:    bson.NewObjectID(),
		blocker:    bson.NewObjectID(),
		community:  bson.NewObjectID(),
		subscribed: bson.NewObjectID(),
		other:      bson.NewObjectID(),
	}
	f.v = &ViewerAccess{
		UserID:     f.viewer,
		Following:  NewIDSet(f.followed, f.blocked),
		BlockTo:    NewIDSet(f.blocked),
		BlockFrom:  NewIDSet(f.blocker),
		Categories: NewIDSet(f.subscribed, f.community),
	}
	return f
}

func post(author, category bson.ObjectID) *models.Post {
	return &models.Post{ID: bson.NewObjectID(), User: author, Category: category, Active: true}
}

func TestFeedCriteriaClauses(t *testing.T) {
	f := newFeedFixture()
	c := f.v.FeedCriteria(f.community)

	tests := []struct {
		name string
		p    *models.Post
		want bool
	}{
		{"A: followed author, plain category", post(f.followed, f.other), true},
		{"A: followed author, community category only via B", post(f.followed, f.community), true},
		{"B: stranger in subscribed category", post(f.stranger, f.subscribed), true},
		{"B: stranger in community when subscribed", post(f.stranger, f.community), true},
		{"C: own post", post(f.viewer, f.other), true},
		{"stranger in unsubscribed category", post(f.stranger, f.other), false},
		{"blocked author even though followed", post(f.blocked, f.other), false},
		{"blocked author in subscribed category", post(f.blocked, f.subscribed), false},
		{"author who blocked viewer", post(f.blocker, f.subscribed), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Matches(tt.p))
		})
	}
}

func TestFeedCriteriaCommunityExcludedFromAAndC(t *testing.T) {
	f := newFeedFixture()
	f.v.Categories = NewIDSet()
	c := f.v.FeedCriteria(f.community)

	assert.False(t, c.Matches(post(f.followed, f.community)), "clause A must skip community posts")
	assert.False(t, c.Matches(post(f.viewer, f.community)), "clause C must skip community posts")

	f.v.Categories = NewIDSet(f.community)
	c = f.v.FeedCriteria(f.community)
	assert.True(t, c.Matches(post(f.stranger, f.community)), "clause B admits subscribed community")
}

func TestCriteriaSkipsInactivePosts(t *testing.T) {
	f := newFeedFixture()
	p := post(f.viewer, f.other)
	p.Active = false
	assert.False(t, f.v.FeedCriteria(f.community).Matches(p))
}

func TestCategoryAuthorSavedCriteria(t *testing.T) {
	f := newFeedFixture()

	cat := f.v.CategoryCriteria(f.other)
	assert.True(t, cat.Matches(post(f.stranger, f.other)))
	assert.False(t, cat.Matches(post(f.stranger, f.subscribed)))
	assert.False(t, cat.Matches(post(f.blocker, f.other)))

	author := f.v.AuthorCriteria(f.stranger)
	assert.True(t, author.Matches(post(f.stranger, f.community)))
	assert.False(t, author.Matches(post(f.followed, f.other)))

	saved := post(f.stranger, f.other)
	saved.Saves = []bson.ObjectID{bson.NewObjectID(), f.viewer}
	assert.True(t, f.v.SavedCriteria().Matches(saved))
	assert.False(t, f.v.SavedCriteria().Matches(post(f.stranger, f.other)))
}

func TestFeedCriteriaFilterShape(t *testing.T) {
	f := newFeedFixture()
	filter := f.v.FeedCriteria(f.community).Filter()

	and, ok := filter["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 3)
	assert.Equal(t, bson.M{"active": true}, and[0])

	excl := and[1].(bson.M)["user"].(bson.M)["$nin"].([]bson.ObjectID)
	assert.ElementsMatch(t, []bson.ObjectID{f.blocked, f.blocker}, excl)

	or := and[2].(bson.M)["$or"].(bson.A)
	require.Len(t, or, 3)

	clauseB := or[1].(bson.M)
	assert.ElementsMatch(t, []bson.ObjectID{f.subscribed, f.community}, clauseB["category"].(bson.M)["$in"])

	clauseC := or[2].(bson.M)["$and"].(bson.A)
	assert.Equal(t, bson.M{"user": f.viewer}, clauseC[0])
	assert.Equal(t, bson.M{"category": bson.M{"$ne": f.community}}, clauseC[1])
}

func TestEmptySetsRenderAsEmptyArrays(t *testing.T) {
	v := &ViewerAccess{
		UserID:     bson.NewObjectID(),
		Following:  NewIDSet(),
		BlockTo:    NewIDSet(),
		BlockFrom:  NewIDSet(),
		Categories: NewIDSet(),
	}
	filter := v.FeedCriteria(bson.NewObjectID()).Filter()
	raw, err := bson.Marshal(filter)
	require.NoError(t, err)
	assert.NotContains(t, bson.Raw(raw).String(), "null")
}
