package accessctx

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/models"
)

// ViewerAccess is everything visibility decisions need about the requesting
// user, loaded once per request.
type ViewerAccess struct {
	UserID     bson.ObjectID
	User       *models.User
	Following  IDSet // users the viewer follows
	BlockTo    IDSet // users the viewer blocked
	BlockFrom  IDSet // users who blocked the viewer
	Categories IDSet // categories the viewer subscribes to
}

type UserFinder interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

type RelationshipReader interface {
	Outgoing(ctx context.Context, subject bson.ObjectID) ([]models.Relationship, error)
	Subjects(ctx context.Context, object bson.ObjectID, typ models.RelType) ([]bson.ObjectID, error)
}

// BuildViewerAccess loads the viewer and their relationship sets. The user
// lookup error is returned unchanged so callers can tell a missing account
// apart from a store failure.
func BuildViewerAccess(ctx context.Context, users UserFinder, rels RelationshipReader, userID bson.ObjectID) (*ViewerAccess, error) {
	u, err := users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	out, err := rels.Outgoing(ctx, userID)
	if err != nil {
		return nil, err
	}
	blockedBy, err := rels.Subjects(ctx, userID, models.RelBlock)
	if err != nil {
		return nil, err
	}

	v := &ViewerAccess{
		UserID:     userID,
		User:       u,
		Following:  NewIDSet(),
		BlockTo:    NewIDSet(),
		BlockFrom:  NewIDSet(blockedBy...),
		Categories: NewIDSet(),
	}
	for _, r := range out {
		switch r.Type {
		case models.RelFollow:
			v.Following.Add(r.Object)
		case models.RelBlock:
			v.BlockTo.Add(r.Object)
		case models.RelCategory:
			v.Categories.Add(r.Object)
		}
	}
	return v, nil
}

// CanSee is the visibility predicate: content by author is hidden when
// either side has blocked the other. Author account status is checked
// separately by callers.
func (v *ViewerAccess) CanSee(author bson.ObjectID) bool {
	return !v.BlockTo.Has(author) && !v.BlockFrom.Has(author)
}

// Blocked is every author hidden from the viewer.
func (v *ViewerAccess) Blocked() IDSet {
	return v.BlockTo.Union(v.BlockFrom)
}

func (v *ViewerAccess) IsAdmin() bool {
	return v != nil && v.User != nil && v.User.IsAdmin()
}

// CanModify reports whether the viewer owns the resource or is an admin.
func (v *ViewerAccess) CanModify(owner bson.ObjectID) bool {
	return v.UserID == owner || v.IsAdmin()
}

// FilterComments keeps the comments whose author the viewer can see,
// preserving order.
func (v *ViewerAccess) FilterComments(comments []models.Comment) []models.Comment {
	out := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if v.CanSee(c.User) {
			out = append(out, c)
		}
	}
	return out
}
