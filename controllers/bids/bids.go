package bids

import (
	"matka/helpers"
	bidsvc "matka/services/bids"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	svc *bidsvc.Service
}

func NewHandler(svc *bidsvc.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Place(c *fiber.Ctx) error {
	market, err := helpers.Market(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var req bidsvc.PlaceRequest
	if err := helpers.ParseBody(c, &req); err != nil {
		return helpers.JSONFail(c, err)
	}

	out, err := h.svc.Place(c.UserContext(), market, req)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Bid placed successfully", fiber.Map{
		"bidId":          out.BidID,
		"reference":      out.Reference,
		"totalAmount":    out.TotalAmount,
		"newBalance":     out.NewBalance,
		"transactionIds": out.TransactionIDs,
	})
}

func (h *Handler) Update(c *fiber.Ctx) error {
	market, err := helpers.Market(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var req bidsvc.UpdateRequest
	if err := helpers.ParseBody(c, &req); err != nil {
		return helpers.JSONFail(c, err)
	}

	out, err := h.svc.Update(c.UserContext(), market, req)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Bid updated successfully", fiber.Map{
		"wager":         out.Wager,
		"delta":         out.Delta,
		"newBalance":    out.NewBalance,
		"transactionId": out.TransactionID,
	})
}

func (h *Handler) List(c *fiber.Ctx) error {
	market, err := helpers.Market(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var f bidsvc.ListFilter
	if err := c.QueryParser(&f); err != nil {
		return helpers.JSONError(c, fiber.StatusBadRequest, "invalid query")
	}

	out, err := h.svc.List(c.UserContext(), market, f)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Bids retrieved successfully", fiber.Map{
		"bids":        out.Rows,
		"count":       out.Count,
		"totalAmount": out.TotalAmount,
	})
}
