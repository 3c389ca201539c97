package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/accessctx"
	"reviewio/internal/apperr"
	"reviewio/internal/logging"
	m "reviewio/internal/models"
	"reviewio/internal/pagination"
	"reviewio/internal/repository"
)

var ErrSelfReport = apperr.Precondition("You cannot report your own content")

// ReportService files reports and applies admin decisions on them.
type ReportService struct {
	Reports  *repository.ReportRepository
	Posts    *PostService
	Comments *CommentService
	Users    *UserService
	BanFor   time.Duration
}

type ReportInput struct {
	ItemID     bson.ObjectID
	ItemType   m.ItemType
	ReportType string
	Message    string
}

// Create resolves the reported item's owner and files an open report.
func (s *ReportService) Create(ctx context.Context, v *accessctx.ViewerAccess, in ReportInput) (*m.Report, error) {
	owner, err := s.owner(ctx, in.ItemType, in.ItemID)
	if err != nil {
		return nil, err
	}
	if owner == v.UserID {
		return nil, ErrSelfReport
	}
	r := &m.Report{
		UserFrom:   v.UserID,
		UserTo:     owner,
		ItemID:     in.ItemID,
		ItemType:   in.ItemType,
		ReportType: in.ReportType,
		Message:    in.Message,
		Status:     m.ReportOpen,
		Action:     m.ActionNone,
	}
	if err := s.Reports.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *ReportService) owner(ctx context.Context, typ m.ItemType, id bson.ObjectID) (bson.ObjectID, error) {
	switch typ {
	case m.ItemPost:
		p, err := s.Posts.Posts.FindByID(ctx, id)
		if err != nil {
			return bson.NilObjectID, notFound(err, ErrPostNotFound)
		}
		return p.User, nil
	case m.ItemComment:
		c, err := s.Comments.Comments.FindByID(ctx, id)
		if err != nil {
			return bson.NilObjectID, notFound(err, ErrCommentNotFound)
		}
		return c.User, nil
	case m.ItemUser:
		u, err := s.Users.Users.FindByID(ctx, id)
		if err != nil {
			return bson.NilObjectID, notFound(err, ErrUserNotFound)
		}
		return u.ID, nil
	}
	return bson.NilObjectID, apperr.Preconditionf("unknown item type %q", typ)
}

func (s *ReportService) List(ctx context.Context, status m.ReportStatus, p pagination.Params) (pagination.Page[m.Report], error) {
	items, err := s.Reports.List(ctx, status, p.Skip(), p.Limit)
	if err != nil {
		return pagination.Page[m.Report]{}, err
	}
	total, err := s.Reports.Count(ctx, status)
	if err != nil {
		return pagination.Page[m.Report]{}, err
	}
	return pagination.NewPage(items, total, p), nil
}

// Resolve records the decision and carries out its action. Delete removes
// the reported item; ban bans the item's owner.
func (s *ReportService) Resolve(ctx context.Context, id bson.ObjectID, status m.ReportStatus, action m.ReportAction) (*m.Report, error) {
	r, err := s.Reports.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrReportNotFound)
	}

	switch action {
	case m.ActionDelete:
		if err := s.deleteItem(ctx, r); err != nil {
			return nil, err
		}
	case m.ActionBan:
		if _, err := s.Users.Ban(ctx, r.UserTo, s.BanFor); err != nil {
			return nil, err
		}
	}

	updated, err := s.Reports.SetResolution(ctx, id, status, action)
	if err != nil {
		return nil, notFound(err, ErrReportNotFound)
	}
	logging.Ctx(ctx).Info().
		Str("report", id.Hex()).
		Str("status", string(status)).
		Str("action", string(action)).
		Msg("report resolved")
	return updated, nil
}

func (s *ReportService) deleteItem(ctx context.Context, r *m.Report) error {
	switch r.ItemType {
	case m.ItemPost:
		p, err := s.Posts.Posts.FindByID(ctx, r.ItemID)
		if err != nil {
			return notFound(err, ErrPostNotFound)
		}
		return s.Posts.remove(ctx, p)
	case m.ItemComment:
		c, err := s.Comments.Comments.FindByID(ctx, r.ItemID)
		if err != nil {
			return notFound(err, ErrCommentNotFound)
		}
		return s.Comments.remove(ctx, c)
	}
	return apperr.Precondition("Only posts and comments can be deleted from a report")
}
