package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"reviewio/internal/accessctx"
	"reviewio/internal/apperr"
	"reviewio/utils"
)

// UIDObjectID reads the user_id Protect stored.
func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	uid, ok := c.Locals("user_id").(string)
	if !ok || uid == "" {
		return bson.NilObjectID, errNoToken
	}
	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return bson.NilObjectID, errInvalidToken
	}
	return oid, nil
}

// Viewer returns the access context InjectViewer stored.
func Viewer(c *fiber.Ctx) (*accessctx.ViewerAccess, error) {
	v, ok := c.Locals("viewer").(*accessctx.ViewerAccess)
	if !ok || v == nil {
		return nil, errNoToken
	}
	return v, nil
}

// ParamID parses a hex ObjectID route parameter.
func ParamID(c *fiber.Ctx, name string) (bson.ObjectID, error) {
	id, err := utils.Oid(c.Params(name))
	if err != nil {
		return bson.NilObjectID, apperr.Preconditionf("Invalid %s: %s", name, c.Params(name))
	}
	return id, nil
}
