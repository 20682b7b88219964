package winners

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

// Preview lists the would-be winners of a declaration. Nothing is written.
func (h *Handler) Preview(c *fiber.Ctx) error {
	market, err := helpers.Market(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var req settlement.Declaration
	if err := helpers.ParseBody(c, &req); err != nil {
		return helpers.JSONFail(c, err)
	}

	out, err := h.engine.Preview(c.UserContext(), market, req)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Winners computed", fiber.Map{
		"winners":        out.Winners,
		"totalBidAmount": out.TotalBidAmount,
		"totalWinAmount": out.TotalWinAmount,
	})
}
