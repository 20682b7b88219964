package sale

import (
	"matka/helpers"
	salesvc "matka/services/sale"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	svc *salesvc.Service
}

func NewHandler(svc *salesvc.Service) *Handler {
	return &Handler{svc: svc}
}

// Report returns the exposure report. For gameType "all" each family report
// is a top-level key such as singleDigitBid or jodiBid.
func (h *Handler) Report(c *fiber.Ctx) error {
	market, err := helpers.Market(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var req salesvc.Request
	if err := helpers.ParseBody(c, &req); err != nil {
		return helpers.JSONFail(c, err)
	}
	if req.GameType == "" {
		return helpers.JSONError(c, fiber.StatusBadRequest, "gameType is required")
	}

	out, err := h.svc.Report(c.UserContext(), market, req)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	data := fiber.Map{
		"gameType": out.GameType,
		"date":     out.Date,
		"reduced":  out.Reduced,
	}
	if out.DeclaredDigits != nil {
		data["declaredDigits"] = out.DeclaredDigits
	}
	if out.Report != nil {
		data["report"] = out.Report.Lines
		data["total"] = out.Report.Total
	}
	for name, r := range out.Reports {
		data[name] = r.Lines
	}

	return helpers.JSONSuccess(c, "Sale report generated", data)
}
