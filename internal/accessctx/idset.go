package accessctx

import (
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDSet is a set of ObjectIDs with O(1) membership.
type IDSet map[bson.ObjectID]struct{}

func NewIDSet(ids ...bson.ObjectID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id bson.ObjectID) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Add(id bson.ObjectID) { s[id] = struct{}{} }

// Union returns a new set holding the members of s and o.
func (s IDSet) Union(o IDSet) IDSet {
	out := make(IDSet, len(s)+len(o))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range o {
		out[id] = struct{}{}
	}
	return out
}

// Slice returns the members in hex order, never nil, so it encodes as an
// empty BSON array rather than null.
func (s IDSet) Slice() []bson.ObjectID {
	out := make([]bson.ObjectID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b bson.ObjectID) int {
		return strings.Compare(a.Hex(), b.Hex())
	})
	return out
}
