package accessctx

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/models"
)

type Field string

const (
	FieldUser     Field = "user"
	FieldCategory Field = "category"
	FieldSaves    Field = "saves"
)

type Op int

const (
	OpIn  Op = iota // some value of the field is in IDs
	OpNin           // no value of the field is in IDs
	OpEq            // some value of the field equals IDs[0]
	OpNe            // no value of the field equals IDs[0]
)

// Cond is one condition on a post field. Array fields (saves) follow MongoDB
// semantics: Eq means "contains", Ne means "does not contain".
type Cond struct {
	Field Field
	Op    Op
	IDs   []bson.ObjectID
}

// Clause is a conjunction of conditions.
type Clause []Cond

// Criteria selects active posts that satisfy every condition in Must and at
// least one clause in AnyOf. An empty AnyOf places no extra restriction.
type Criteria struct {
	Must  Clause
	AnyOf []Clause
}

func in(f Field, ids []bson.ObjectID) Cond  { return Cond{Field: f, Op: OpIn, IDs: ids} }
func nin(f Field, ids []bson.ObjectID) Cond { return Cond{Field: f, Op: OpNin, IDs: ids} }
func eq(f Field, id bson.ObjectID) Cond     { return Cond{Field: f, Op: OpEq, IDs: []bson.ObjectID{id}} }
func ne(f Field, id bson.ObjectID) Cond     { return Cond{Field: f, Op: OpNe, IDs: []bson.ObjectID{id}} }

func (v *ViewerAccess) exclusions() Clause {
	return Clause{nin(FieldUser, v.Blocked().Slice())}
}

// FeedCriteria is the home feed. A post is eligible when
//
//	A: its author is followed and it is not in the community category, or
//	B: its category is subscribed to, or
//	C: the viewer wrote it and it is not in the community category,
//
// and in every case its author has not blocked, and is not blocked by, the
// viewer.
func (v *ViewerAccess) FeedCriteria(community bson.ObjectID) Criteria {
	return Criteria{
		Must: v.exclusions(),
		AnyOf: []Clause{
			{in(FieldUser, v.Following.Slice()), ne(FieldCategory, community)},
			{in(FieldCategory, v.Categories.Slice())},
			{eq(FieldUser, v.UserID), ne(FieldCategory, community)},
		},
	}
}

// CategoryCriteria is every visible post in one category.
func (v *ViewerAccess) CategoryCriteria(category bson.ObjectID) Criteria {
	return Criteria{Must: append(v.exclusions(), eq(FieldCategory, category))}
}

// AuthorCriteria is a user's profile listing, community posts included.
func (v *ViewerAccess) AuthorCriteria(author bson.ObjectID) Criteria {
	return Criteria{Must: append(v.exclusions(), eq(FieldUser, author))}
}

// SavedCriteria is the viewer's saved posts.
func (v *ViewerAccess) SavedCriteria() Criteria {
	return Criteria{Must: append(v.exclusions(), eq(FieldSaves, v.UserID))}
}

// Filter renders c as a MongoDB query on the posts collection.
func (c Criteria) Filter() bson.M {
	and := bson.A{bson.M{"active": true}}
	for _, cond := range c.Must {
		and = append(and, cond.filter())
	}
	if len(c.AnyOf) > 0 {
		or := bson.A{}
		for _, cl := range c.AnyOf {
			or = append(or, cl.filter())
		}
		and = append(and, bson.M{"$or": or})
	}
	return bson.M{"$and": and}
}

func (cl Clause) filter() bson.M {
	if len(cl) == 1 {
		return cl[0].filter()
	}
	and := bson.A{}
	for _, cond := range cl {
		and = append(and, cond.filter())
	}
	return bson.M{"$and": and}
}

func (c Cond) filter() bson.M {
	ids := c.IDs
	if ids == nil {
		ids = []bson.ObjectID{}
	}
	switch c.Op {
	case OpIn:
		return bson.M{string(c.Field): bson.M{"$in": ids}}
	case OpNin:
		return bson.M{string(c.Field): bson.M{"$nin": ids}}
	case OpEq:
		return bson.M{string(c.Field): ids[0]}
	default:
		return bson.M{string(c.Field): bson.M{"$ne": ids[0]}}
	}
}

// Matches evaluates c against a post in memory with the same semantics as
// Filter.
func (c Criteria) Matches(p *models.Post) bool {
	if !p.Active || !c.Must.matches(p) {
		return false
	}
	if len(c.AnyOf) == 0 {
		return true
	}
	for _, cl := range c.AnyOf {
		if cl.matches(p) {
			return true
		}
	}
	return false
}

func (cl Clause) matches(p *models.Post) bool {
	for _, cond := range cl {
		if !cond.matches(p) {
			return false
		}
	}
	return true
}

func (c Cond) matches(p *models.Post) bool {
	var values []bson.ObjectID
	switch c.Field {
	case FieldUser:
		values = []bson.ObjectID{p.User}
	case FieldCategory:
		values = []bson.ObjectID{p.Category}
	case FieldSaves:
		values = p.Saves
	}

	hit := false
	for _, v := range values {
		if models.Contains(c.IDs, v) {
			hit = true
			break
		}
	}
	switch c.Op {
	case OpIn, OpEq:
		return hit
	default:
		return !hit
	}
}
