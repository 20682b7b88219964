package helpers

import (
	"matka/errs"
	"matka/models"

	"github.com/gofiber/fiber/v2"
)

// Market resolves the {market} path segment.
func Market(c *fiber.Ctx) (models.Market, error) {
	m, ok := models.ParseMarket(c.Params("market"))
	if !ok {
		return "", errs.NotFound("unknown market %q", c.Params("market"))
	}
	return m, nil
}

// ParseBody decodes the JSON body into out.
func ParseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return errs.Validation("invalid request body")
	}
	return nil
}
