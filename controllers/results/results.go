package results

import (
	"matka/helpers"
	"matka/services/settlement"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	engine *settlement.Engine
}

func NewHandler(engine *settlement.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) Declare(c *fiber.Ctx) error {
	market, err := helpers.Market(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var req settlement.DeclareRequest
	if err := helpers.ParseBody(c, &req); err != nil {
		return helpers.JSONFail(c, err)
	}
	if admin, ok := c.Locals("admin").(string); ok {
		req.DeclaredBy = admin
	}

	out, err := h.engine.Declare(c.UserContext(), market, req)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Result declared successfully", fiber.Map{
		"result":         out.Result,
		"winnerCount":    out.WinnerCount,
		"totalBidAmount": out.TotalBidAmount,
		"totalWinAmount": out.TotalWinAmount,
		"totalCredited":  out.TotalCredited,
	})
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	market, err := helpers.Market(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	id := c.QueryInt("id")
	if id <= 0 {
		return helpers.JSONError(c, fiber.StatusBadRequest, "id is required")
	}

	out, err := h.engine.DeleteResult(c.UserContext(), market, uint(id), c.Query("sessionType"))
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Result deleted successfully", fiber.Map{
		"resultId":       out.ResultID,
		"winnersRemoved": out.WinnersRemoved,
		"amountReversed": out.AmountReversed,
	})
}

func (h *Handler) List(c *fiber.Ctx) error {
	market, err := helpers.Market(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	out, err := h.engine.Results(c.UserContext(), market, c.Query("date"), c.Query("session"))
	if err != nil {
		return helpers.JSONFail(c, err)
	}
	return helpers.JSONSuccess(c, "Results retrieved successfully", fiber.Map{"results": out})
}

func (h *Handler) Pending(c *fiber.Ctx) error {
	market, err := helpers.Market(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	out, err := h.engine.Pending(c.UserContext(), market, c.Query("date"), c.Query("session"))
	if err != nil {
		return helpers.JSONFail(c, err)
	}
	return helpers.JSONSuccess(c, "Pending games retrieved successfully", fiber.Map{"games": out})
}
