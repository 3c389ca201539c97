package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/accessctx"
	"reviewio/internal/logging"
	m "reviewio/internal/models"
	"reviewio/internal/pagination"
	"reviewio/internal/repository"
)

// UserService owns profiles and the follow and block edges between users.
// Multi-document changes here (edge plus counters, block plus follow
// removal) are separate writes with no transaction.
type UserService struct {
	Users *repository.UserRepository
	Rels  *repository.RelationshipRepository
}

// Get returns an active user the viewer is allowed to see.
func (s *UserService) Get(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) (*m.User, error) {
	if !v.CanSee(id) {
		return nil, ErrUserNotFound
	}
	return s.activeUser(ctx, id)
}

func (s *UserService) activeUser(ctx context.Context, id bson.ObjectID) (*m.User, error) {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if !u.Active {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type ProfileUpdate struct {
	Name *string
	Bio  *string
}

func (s *UserService) UpdateMe(ctx context.Context, id bson.ObjectID, in ProfileUpdate) (*m.User, error) {
	set := bson.M{}
	if in.Name != nil {
		set["name"] = *in.Name
	}
	if in.Bio != nil {
		set["bio"] = *in.Bio
	}
	u, err := s.Users.Update(ctx, id, set)
	return u, notFound(err, ErrUserNotFound)
}

// DeleteMe closes the account. Its posts drop out of every feed and it
// cannot log in again.
func (s *UserService) DeleteMe(ctx context.Context, id bson.ObjectID) error {
	return notFound(s.Users.Close(ctx, id), ErrUserNotFound)
}

// Follow rejects targets that are inactive or blocked either way.
func (s *UserService) Follow(ctx context.Context, v *accessctx.ViewerAccess, target bson.ObjectID) error {
	if target == v.UserID {
		return ErrSelfFollow
	}
	if _, err := s.activeUser(ctx, target); err != nil {
		return err
	}
	// read the store rather than v, so a block recorded after v was loaded
	// still wins
	blocked, err := s.Rels.BlockedEitherWay(ctx, v.UserID, target)
	if err != nil {
		return err
	}
	if blocked {
		return ErrBlocked
	}
	if err := s.Rels.Insert(ctx, v.UserID, target, m.RelFollow); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return s.moveFollowCounters(ctx, v.UserID, target, 1)
}

func (s *UserService) Unfollow(ctx context.Context, v *accessctx.ViewerAccess, target bson.ObjectID) error {
	if err := s.Rels.Delete(ctx, v.UserID, target, m.RelFollow); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFollowing
		}
		return err
	}
	return s.moveFollowCounters(ctx, v.UserID, target, -1)
}

// Block records the block edge, then removes follow edges in both
// directions. A failure between the steps leaves the block in place.
func (s *UserService) Block(ctx context.Context, v *accessctx.ViewerAccess, target bson.ObjectID) error {
	if target == v.UserID {
		return ErrSelfBlock
	}
	if _, err := s.Users.FindByID(ctx, target); err != nil {
		return notFound(err, ErrUserNotFound)
	}
	if err := s.Rels.Insert(ctx, v.UserID, target, m.RelBlock); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyBlocked
		}
		return err
	}

	for _, pair := range [][2]bson.ObjectID{{v.UserID, target}, {target, v.UserID}} {
		err := s.Rels.Delete(ctx, pair[0], pair[1], m.RelFollow)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err == nil {
			err = s.moveFollowCounters(ctx, pair[0], pair[1], -1)
		}
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).
				Str("blocker", v.UserID.Hex()).
				Str("blocked", target.Hex()).
				Msg("block recorded but follow cleanup failed")
			return err
		}
	}
	return nil
}

func (s *UserService) Unblock(ctx context.Context, v *accessctx.ViewerAccess, target bson.ObjectID) error {
	if err := s.Rels.Delete(ctx, v.UserID, target, m.RelBlock); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotBlocked
		}
		return err
	}
	return nil
}

func (s *UserService) moveFollowCounters(ctx context.Context, follower, followee bson.ObjectID, delta int64) error {
	if err := s.Users.IncCounter(ctx, follower, "following_count", delta); err != nil {
		return err
	}
	return s.Users.IncCounter(ctx, followee, "followers_count", delta)
}

// Followers lists who follows id, hiding users blocked either way.
func (s *UserService) Followers(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID, p pagination.Params) (pagination.Page[*m.UserSummary], error) {
	ids, err := s.Rels.Subjects(ctx, id, m.RelFollow)
	if err != nil {
		return pagination.Page[*m.UserSummary]{}, err
	}
	return s.userPage(ctx, v, ids, p)
}

// Following lists who id follows, hiding users blocked either way.
func (s *UserService) Following(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID, p pagination.Params) (pagination.Page[*m.UserSummary], error) {
	ids, err := s.Rels.Objects(ctx, id, m.RelFollow)
	if err != nil {
		return pagination.Page[*m.UserSummary]{}, err
	}
	return s.userPage(ctx, v, ids, p)
}

func (s *UserService) userPage(ctx context.Context, v *accessctx.ViewerAccess, ids []bson.ObjectID, p pagination.Params) (pagination.Page[*m.UserSummary], error) {
	visible := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if v.CanSee(id) {
			visible = append(visible, id)
		}
	}
	users, err := s.Users.ListByIDs(ctx, visible, p.Skip(), p.Limit)
	if err != nil {
		return pagination.Page[*m.UserSummary]{}, err
	}
	out := make([]*m.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return pagination.NewPage(out, int64(len(visible)), p), nil
}

// Ban deactivates id until now+d. The account's content leaves feeds until
// its next login after the ban expires. Closed accounts report
// ErrUserNotFound.
func (s *UserService) Ban(ctx context.Context, id bson.ObjectID, d time.Duration) (*m.User, error) {
	u, err := s.Users.Ban(ctx, id, time.Now().UTC().Add(d))
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	logging.Ctx(ctx).Warn().Str("user", id.Hex()).Time("until", *u.BanExpires).Msg("user banned")
	return u, nil
}
