package routes

import (
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"reviewio/config"
	"reviewio/internal/controllers"
	"reviewio/internal/middleware"
	"reviewio/internal/repository"
	"reviewio/internal/services"
	"reviewio/utils"
)

const reportBanFor = 7 * 24 * time.Hour

// Handlers holds one instance of every controller, built over a shared set
// of repositories.
type Handlers struct {
	Auth          *controllers.AuthHandler
	Users         *controllers.UserHandler
	Posts         *controllers.PostHandler
	Comments      *controllers.CommentHandler
	Categories    *controllers.CategoryHandler
	Notifications *controllers.NotificationHandler
	Reports       *controllers.ReportHandler

	users *repository.UserRepository
	rels  *repository.RelationshipRepository
}

func NewHandlers(db *mongo.Database, cfg *config.Config, community bson.ObjectID) *Handlers {
	users := repository.NewUserRepository(db)
	rels := repository.NewRelationshipRepository(db)
	cats := repository.NewCategoryRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)
	notis := repository.NewNotificationRepository(db)
	reports := repository.NewReportRepository(db)

	notifier := &services.Notifier{Store: notis, Followers: rels, BatchSize: cfg.Fanout.BatchSize}
	feed := &services.FeedService{
		Posts:      posts,
		Users:      users,
		Comments:   comments,
		Categories: cats,
		Community:  community,
	}
	userSvc := &services.UserService{Users: users, Rels: rels}
	postSvc := &services.PostService{
		Posts:      posts,
		Categories: cats,
		Users:      users,
		Notifier:   notifier,
		Feed:       feed,
	}
	commentSvc := &services.CommentService{Comments: comments, Posts: postSvc, Users: users, Notifier: notifier}

	masker := utils.NewMasker(slices.Concat(utils.DefaultBannedWords, utils.SplitWords(cfg.Content.ExtraBannedWords)))
	postSvc.Masker = masker
	commentSvc.Masker = masker

	paging := controllers.Paging{Default: cfg.Feed.DefaultLimit, Max: cfg.Feed.MaxLimit}

	return &Handlers{
		Auth: &controllers.AuthHandler{
			Auth: &services.AuthService{Users: users, Secret: []byte(cfg.Auth.JWTSecret), TTL: cfg.Auth.ExpiresIn},
		},
		Users:    &controllers.UserHandler{Users: userSvc, Paging: paging},
		Posts:    &controllers.PostHandler{Posts: postSvc, Feeds: feed, Paging: paging},
		Comments: &controllers.CommentHandler{Comments: commentSvc},
		Categories: &controllers.CategoryHandler{
			Categories: &services.CategoryService{Categories: cats, Rels: rels},
		},
		Notifications: &controllers.NotificationHandler{
			Inbox:  &services.InboxService{Notifications: notis},
			Paging: paging,
		},
		Reports: &controllers.ReportHandler{
			Reports: &services.ReportService{
				Reports:  reports,
				Posts:    postSvc,
				Comments: commentSvc,
				Users:    userSvc,
				BanFor:   reportBanFor,
			},
			Paging: paging,
		},
		users: users,
		rels:  rels,
	}
}

// Register mounts /auth publicly and everything else behind Protect and
// InjectViewer.
func Register(app *fiber.App, h *Handlers, cfg *config.Config) {
	SetupAuth(app, h, cfg.Server.AuthRateLimit)

	api := app.Group("",
		middleware.Protect(cfg.Auth.JWTSecret),
		middleware.InjectViewer(h.users, h.rels),
	)
	SetupUsers(api, h)
	SetupPosts(api, h)
	SetupComments(api, h)
	SetupCategories(api, h)
	SetupNotifications(api, h)
	SetupReports(api, h)
}
