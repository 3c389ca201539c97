package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/accessctx"
	"reviewio/internal/apperr"
	m "reviewio/internal/models"
	"reviewio/internal/repository"
	"reviewio/utils"
)

var ErrCategoryExists = apperr.Precondition("A category with this name already exists")

type CategoryService struct {
	Categories *repository.CategoryRepository
	Rels       *repository.RelationshipRepository
}

func (s *CategoryService) List(ctx context.Context) ([]m.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CategoryService) BySlug(ctx context.Context, slug string) (*m.Category, error) {
	c, err := s.Categories.FindBySlug(ctx, slug)
	return c, notFound(err, ErrCategoryNotFound)
}

type CategoryInput struct {
	Name   string
	Parent *bson.ObjectID
	Genre  bool
}

// Create derives the slug from the name and copies the ancestor path from
// the parent. Paths are fixed at creation.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*m.Category, error) {
	slug := utils.Slugify(in.Name)
	if slug == "" {
		return nil, apperr.Precondition("Category name must contain letters or digits")
	}
	c := &m.Category{Name: in.Name, Slug: slug, Genre: in.Genre, Ancestors: []m.Ancestor{}}

	if in.Parent != nil {
		parent, err := s.Categories.FindByID(ctx, *in.Parent)
		if err != nil {
			return nil, notFound(err, ErrCategoryNotFound)
		}
		c.Parent = &parent.ID
		c.Ancestors = append(append(c.Ancestors, parent.Ancestors...), parent.AsAncestor())
	}

	if err := s.Categories.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}
	return c, nil
}

// Follow subscribes the viewer. Only genre categories accept followers.
func (s *CategoryService) Follow(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) error {
	c, err := s.Categories.FindByID(ctx, id)
	if err != nil {
		return notFound(err, ErrCategoryNotFound)
	}
	if !c.Genre {
		return ErrNotGenre
	}
	if err := s.Rels.Insert(ctx, v.UserID, id, m.RelCategory); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyFollowCat
		}
		return err
	}
	return s.Categories.Inc(ctx, id, "followers", 1)
}

func (s *CategoryService) Unfollow(ctx context.Context, v *accessctx.ViewerAccess, id bson.ObjectID) error {
	if err := s.Rels.Delete(ctx, v.UserID, id, m.RelCategory); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFollowCat
		}
		return err
	}
	return s.Categories.Inc(ctx, id, "followers", -1)
}
