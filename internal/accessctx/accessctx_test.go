package accessctx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/models"
)

type fakeUsers map[bson.ObjectID]*models.User

func (f fakeUsers) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, errors.New("no user")
}

type fakeRels []models.Relationship

func (f fakeRels) Outgoing(_ context.Context, subject bson.ObjectID) ([]models.Relationship, error) {
	var out []models.Relationship
	for _, r := range f {
		if r.Subject == subject {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeRels) Subjects(_ context.Context, object bson.ObjectID, typ models.RelType) ([]bson.ObjectID, error) {
	var out []bson.ObjectID
	for _, r := range f {
		if r.Object == object && r.Type == typ {
			out = append(out, r.Subject)
		}
	}
	return out, nil
}

func TestBuildViewerAccess(t *testing.T) {
	a, b, c, d := bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID()
	cat := bson.NewObjectID()

	users := fakeUsers{a: {ID: a, Active: true}}
	rels := fakeRels{
		{Subject: a, Object: b, Type: models.RelFollow},
		{Subject: a, Object: c, Type: models.RelBlock},
		{Subject: d, Object: a, Type: models.RelBlock},
		{Subject: a, Object: cat, Type: models.RelCategory},
		{Subject: b, Object: a, Type: models.RelFollow},
	}

	v, err := BuildViewerAccess(context.Background(), users, rels, a)
	require.NoError(t, err)

	assert.True(t, v.Following.Has(b))
	assert.True(t, v.BlockTo.Has(c))
	assert.True(t, v.BlockFrom.Has(d))
	assert.True(t, v.Categories.Has(cat))
	assert.Len(t, v.Following, 1)
	assert.Len(t, v.BlockFrom, 1)
}

func TestBuildViewerAccessMissingUser(t *testing.T) {
	_, err := BuildViewerAccess(context.Background(), fakeUsers{}, fakeRels{}, bson.NewObjectID())
	assert.Error(t, err)
}

// One block edge must hide content in both directions.
func TestBlockSymmetry(t *testing.T) {
	a, b := bson.NewObjectID(), bson.NewObjectID()
	rels := fakeRels{{Subject: a, Object: b, Type: models.RelBlock}}
	users := fakeUsers{a: {ID: a}, b: {ID: b}}

	va, err := BuildViewerAccess(context.Background(), users, rels, a)
	require.NoError(t, err)
	vb, err := BuildViewerAccess(context.Background(), users, rels, b)
	require.NoError(t, err)

	assert.False(t, va.CanSee(b))
	assert.False(t, vb.CanSee(a))
	assert.True(t, va.CanSee(bson.NewObjectID()))
}

func TestFilterComments(t *testing.T) {
	viewer, blocked := bson.NewObjectID(), bson.NewObjectID()
	v := &ViewerAccess{
		UserID:    viewer,
		BlockTo:   NewIDSet(blocked),
		BlockFrom: NewIDSet(),
	}
	comments := []models.Comment{
		{ID: bson.NewObjectID(), User: bson.NewObjectID(), Text: "one"},
		{ID: bson.NewObjectID(), User: blocked, Text: "two"},
		{ID: bson.NewObjectID(), User: viewer, Text: "three"},
	}

	got := v.FilterComments(comments)
	require.Len(t, got, 2)
	assert.Equal(t, "one", got[0].Text)
	assert.Equal(t, "three", got[1].Text)
	assert.NotNil(t, v.FilterComments(nil))
}

func TestCanModify(t *testing.T) {
	owner := bson.NewObjectID()
	v := &ViewerAccess{UserID: owner, User: &models.User{ID: owner, Role: models.RoleUser}}
	assert.True(t, v.CanModify(owner))
	assert.False(t, v.CanModify(bson.NewObjectID()))

	admin := &ViewerAccess{UserID: bson.NewObjectID(), User: &models.User{Role: models.RoleAdmin}}
	assert.True(t, admin.CanModify(owner))
}

func TestIDSetSliceNeverNil(t *testing.T) {
	s := NewIDSet().Slice()
	assert.NotNil(t, s)
	assert.Empty(t, s)
}
