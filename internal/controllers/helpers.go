package controllers

import (
	"github.com/gofiber/fiber/v2"

	"reviewio/internal/apperr"
	"reviewio/internal/pagination"
	"reviewio/internal/validation"
)

var errBadBody = apperr.Precondition("Invalid request body")

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return errBadBody.Wrap(err)
	}
	return validation.ValidateStruct(req)
}

// Paging holds the list size defaults from config.
type Paging struct {
	Default int64
	Max     int64
}

func (p Paging) params(c *fiber.Ctx) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("limit"), p.Default, p.Max)
}
