package users

import (
	"matka/helpers"
	"matka/services/ledger"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Transactions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, fiber.StatusBadRequest, "invalid user id")
	}

	out, err := ledger.History(c.UserContext(), h.db, uint(id), c.QueryInt("limit", 50))
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Transactions retrieved successfully", fiber.Map{
		"userId":       out.UserID,
		"balance":      out.Balance,
		"transactions": out.Transactions,
	})
}
