//go:build integration

package routes

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewio/bootstrap"
	"reviewio/config"
	"reviewio/dto"
	"reviewio/internal/middleware"
	"reviewio/internal/models"
	"reviewio/internal/repository"
	"reviewio/internal/testinfra"
)

type client struct {
	t   *testing.T
	app *fiber.App
}

func (c client) call(method, path, token string, body any) (int, []byte) {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := c.app.Test(req, 10_000)
	require.NoError(c.t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, out
}

func (c client) signup(name string) (token string, user models.User) {
	c.t.Helper()
	status, raw := c.call(http.MethodPost, "/auth/signup", "", dto.SignupReq{
		Name: name, Username: name, Email: name + "@example.com", Password: "password123",
	})
	require.Equal(c.t, http.StatusCreated, status, string(raw))
	var resp dto.AuthResponse
	require.NoError(c.t, json.Unmarshal(raw, &resp))
	return resp.Token, *resp.Data.User
}

func newTestApp(t *testing.T) (client, *models.Category) {
	t.Helper()
	ctx := context.Background()
	db := testinfra.MongoDatabase(t)
	require.NoError(t, bootstrap.EnsureIndexes(ctx, db))

	cats := repository.NewCategoryRepository(db)
	community, err := bootstrap.EnsureCommunityCategory(ctx, cats, "community")
	require.NoError(t, err)
	general := &models.Category{Name: "General", Slug: "general", Genre: true}
	require.NoError(t, cats.Create(ctx, general))

	cfg := &config.Config{
		Server: config.ServerConfig{AuthRateLimit: 100, RequestTimeout: 5 * time.Second},
		Auth:   config.AuthConfig{JWTSecret: "integration", ExpiresIn: time.Hour},
		Feed:   config.FeedConfig{DefaultLimit: 5, MaxLimit: 50},
		Fanout: config.FanoutConfig{BatchSize: 10},
	}
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(true)})
	app.Use(middleware.RequestID())
	Register(app, NewHandlers(db, cfg, community.ID), cfg)
	return client{t: t, app: app}, general
}

func TestHTTPFeedFlow(t *testing.T) {
	c, general := newTestApp(t)
	aliceTok, _ := c.signup("alice")
	bobTok, bob := c.signup("bob")

	status, raw := c.call(http.MethodPatch, "/users/"+bob.ID.Hex()+"/follow", aliceTok, nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	status, raw = c.call(http.MethodPost, "/posts", bobTok, dto.CreatePostReq{
		Title: "first", Text: "hello", Category: general.ID.Hex(),
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var created dto.DocResponse[models.Post]
	require.NoError(t, json.Unmarshal(raw, &created))
	postID := created.Data.Doc.ID.Hex()

	status, raw = c.call(http.MethodGet, "/posts/feed", aliceTok, nil)
	require.Equal(t, http.StatusOK, status)
	var feed dto.ListResponse[models.FeedPost]
	require.NoError(t, json.Unmarshal(raw, &feed))
	assert.EqualValues(t, 1, feed.Total)
	assert.False(t, feed.HasNext)
	require.Len(t, feed.Data.Doc, 1)
	assert.Equal(t, "bob", feed.Data.Doc[0].Author.Username)

	status, _ = c.call(http.MethodPatch, "/posts/"+postID+"/like", aliceTok, nil)
	assert.Equal(t, http.StatusOK, status)
	status, raw = c.call(http.MethodPatch, "/posts/"+postID+"/like", aliceTok, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	var errBody dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &errBody))
	assert.Equal(t, "Post already liked", errBody.Message)

	status, raw = c.call(http.MethodGet, "/notifications", bobTok, nil)
	require.Equal(t, http.StatusOK, status)
	var inbox dto.InboxResponse
	require.NoError(t, json.Unmarshal(raw, &inbox))
	assert.EqualValues(t, 1, inbox.Unopened)

	status, _ = c.call(http.MethodPatch, "/users/"+bob.ID.Hex()+"/block", aliceTok, nil)
	require.Equal(t, http.StatusOK, status)
	status, raw = c.call(http.MethodGet, "/posts/feed", aliceTok, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &feed))
	assert.Empty(t, feed.Data.Doc)
	assert.Zero(t, feed.Total)

	status, _ = c.call(http.MethodGet, "/posts/"+postID, aliceTok, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHTTPAuthAndValidation(t *testing.T) {
	c, _ := newTestApp(t)

	status, raw := c.call(http.MethodPost, "/auth/signup", "", map[string]string{"email": "nope"})
	require.Equal(t, http.StatusBadRequest, status)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Invalid input data", body.Message)

	c.signup("carol")
	status, _ = c.call(http.MethodPost, "/auth/login", "", dto.LoginReq{Email: "carol@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = c.call(http.MethodGet, "/posts/feed", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	tok, _ := c.signup("dave")
	status, _ = c.call(http.MethodGet, "/reports", tok, nil)
	assert.Equal(t, http.StatusForbidden, status)
}
