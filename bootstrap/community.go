package bootstrap

import (
	"context"

	"reviewio/internal/logging"
	"reviewio/internal/models"
	"reviewio/internal/repository"
)

// EnsureCommunityCategory makes sure the reserved community category exists
// and returns it. It is not a genre, so users cannot subscribe to it through
// the API.
func EnsureCommunityCategory(ctx context.Context, cats *repository.CategoryRepository, slug string) (*models.Category, error) {
	c, err := cats.Ensure(ctx, models.Category{Name: "Community", Slug: slug, Genre: false})
	if err != nil {
		return nil, err
	}
	logging.Info().Str("slug", c.Slug).Str("id", c.ID.Hex()).Msg("community category ready")
	return c, nil
}
