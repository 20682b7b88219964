package routes

import (
	"time"

	"matka/controllers/bids"
	"matka/controllers/results"
	"matka/controllers/sale"
	"matka/controllers/users"
	"matka/controllers/winners"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Bids    *bids.Handler
	Sale    *sale.Handler
	Winners *winners.Handler
	Results *results.Handler
	Users   *users.Handler
}

func Setup(app *fiber.App, h Handlers, auth fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	bidroutes := app.Group("/bids", auth)
	bidroutes.Post("/:market", h.Bids.Place)
	bidroutes.Put("/:market", h.Bids.Update)
	bidroutes.Get("/:market", h.Bids.List)

	app.Post("/sale/:market", auth, h.Sale.Report)
	app.Post("/winners/:market", auth, h.Winners.Preview)

	resultroutes := app.Group("/results", auth)
	resultroutes.Get("/:market/pending", h.Results.Pending)
	resultroutes.Get("/:market", h.Results.List)
	resultroutes.Post("/:market", h.Results.Declare)
	resultroutes.Delete("/:market", h.Results.Delete)

	app.Get("/users/:id/transactions", auth, h.Users.Transactions)
}
