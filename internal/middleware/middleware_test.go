package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/dto"
	"reviewio/internal/models"
	"reviewio/internal/repository"
	"reviewio/internal/services"
	"reviewio/internal/validation"
)

const testSecret = "test-secret"

type fakeUsers map[bson.ObjectID]*models.User

func (f fakeUsers) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
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

func token(t *testing.T, uid string, method jwt.SigningMethod, exp time.Time) string {
	t.Helper()
	claims := services.Claims{
		UID:              uid,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func newApp(users fakeUsers, rels fakeRels) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
	app.Use(RequestID())
	protected := app.Group("", Protect(testSecret), InjectViewer(users, rels))
	protected.Get("/me", func(c *fiber.Ctx) error {
		v, err := Viewer(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": v.UserID.Hex(), "blocked": len(v.BlockTo)})
	})
	protected.Get("/admin", RestrictTo(models.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	protected.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := ParamID(c, "id")
		if err != nil {
			return err
		}
		return c.SendString(id.Hex())
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, bearer string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body dto.ErrorResponse
	_ = json.Unmarshal(raw, &body)
	return resp, body
}

func TestProtect(t *testing.T) {
	alice := &models.User{ID: bson.NewObjectID(), Role: models.RoleUser, Active: true}
	app := newApp(fakeUsers{alice.ID: alice}, nil)
	valid := time.Now().Add(time.Hour)

	t.Run("missing header", func(t *testing.T) {
		resp, body := do(t, app, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, dto.StatusFail, body.Status)
	})

	t.Run("valid token", func(t *testing.T) {
		resp, _ := do(t, app, "/me", token(t, alice.ID.Hex(), jwt.SigningMethodHS256, valid))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
	})

	t.Run("expired token", func(t *testing.T) {
		resp, body := do(t, app, "/me", token(t, alice.ID.Hex(), jwt.SigningMethodHS256, time.Now().Add(-time.Minute)))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, errInvalidToken.Message, body.Message)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		resp, _ := do(t, app, "/me", token(t, alice.ID.Hex(), jwt.SigningMethodHS512, valid))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("unknown user", func(t *testing.T) {
		resp, body := do(t, app, "/me", token(t, bson.NewObjectID().Hex(), jwt.SigningMethodHS256, valid))
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, services.ErrAccountGone.Message, body.Message)
	})
}

func TestInjectViewerAccountState(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	banned := &models.User{ID: bson.NewObjectID(), Active: false, BanExpires: &future}
	gone := &models.User{ID: bson.NewObjectID(), Active: false}
	app := newApp(fakeUsers{banned.ID: banned, gone.ID: gone}, nil)
	valid := time.Now().Add(time.Hour)

	resp, body := do(t, app, "/me", token(t, banned.ID.Hex(), jwt.SigningMethodHS256, valid))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, services.ErrBanned.Message, body.Message)

	resp, _ = do(t, app, "/me", token(t, gone.ID.Hex(), jwt.SigningMethodHS256, valid))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInjectViewerLoadsRelationships(t *testing.T) {
	alice := &models.User{ID: bson.NewObjectID(), Active: true}
	bob := bson.NewObjectID()
	app := newApp(fakeUsers{alice.ID: alice}, fakeRels{
		{Subject: alice.ID, Object: bob, Type: models.RelBlock},
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token(t, alice.ID.Hex(), jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		ID      string `json:"id"`
		Blocked int    `json:"blocked"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, alice.ID.Hex(), got.ID)
	assert.Equal(t, 1, got.Blocked)
}

func TestRestrictTo(t *testing.T) {
	user := &models.User{ID: bson.NewObjectID(), Role: models.RoleUser, Active: true}
	admin := &models.User{ID: bson.NewObjectID(), Role: models.RoleAdmin, Active: true}
	app := newApp(fakeUsers{user.ID: user, admin.ID: admin}, nil)
	valid := time.Now().Add(time.Hour)

	resp, _ := do(t, app, "/admin", token(t, user.ID.Hex(), jwt.SigningMethodHS256, valid))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, app, "/admin", token(t, admin.ID.Hex(), jwt.SigningMethodHS256, valid))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestParamID(t *testing.T) {
	alice := &models.User{ID: bson.NewObjectID(), Active: true}
	app := newApp(fakeUsers{alice.ID: alice}, nil)

	resp, body := do(t, app, "/items/not-an-id", token(t, alice.ID.Hex(), jwt.SigningMethodHS256, time.Now().Add(time.Hour)))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Message, "Invalid id")
}

func TestTimeout(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(false)})
	app.Use(Timeout(20 * time.Millisecond))
	app.Get("/slow", func(c *fiber.Ctx) error {
		<-c.UserContext().Done()
		return c.UserContext().Err()
	})
	app.Get("/fast", func(c *fiber.Ctx) error {
		_, ok := c.UserContext().Deadline()
		assert.True(t, ok)
		return c.SendString("ok")
	})

	resp, body := do(t, app, "/slow", "")
	assert.Equal(t, http.StatusRequestTimeout, resp.StatusCode)
	assert.Equal(t, dto.StatusFail, body.Status)

	resp, _ = do(t, app, "/fast", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		dev    bool
		status int
		msg    string
	}{
		{"not found sentinel", services.ErrPostNotFound, false, http.StatusNotFound, "No post found"},
		{"wrapped precondition", services.ErrAlreadyLiked.Wrap(errors.New("x")), false, http.StatusBadRequest, "Post already liked"},
		{"forbidden", services.ErrNotOwner, false, http.StatusForbidden, services.ErrNotOwner.Message},
		{"repository not found", repository.ErrNotFound, false, http.StatusNotFound, "No document found"},
		{"duplicate", repository.ErrDuplicate, false, http.StatusBadRequest, "Duplicate field value, please use another value"},
		{"fiber error", fiber.NewError(http.StatusTooManyRequests, "slow down"), false, http.StatusTooManyRequests, "slow down"},
		{"validation", validation.Errors{{Field: "email", Message: "email is required"}}, false, http.StatusBadRequest, "Invalid input data"},
		{"unknown in production", errors.New("boom"), false, http.StatusInternalServerError, "Something went wrong"},
		{"unknown in development", errors.New("boom"), true, http.StatusInternalServerError, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := Render(tt.err, tt.dev)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.msg, body.Message)
			if status >= http.StatusInternalServerError {
				assert.Equal(t, dto.StatusError, body.Status)
			} else {
				assert.Equal(t, dto.StatusFail, body.Status)
			}
		})
	}
}
