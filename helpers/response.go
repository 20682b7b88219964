package helpers

import (
	"matka/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// JSONSuccess writes {status:true, message, ...data}.
func JSONSuccess(c *fiber.Ctx, message string, data fiber.Map) error {
	body := fiber.Map{
		"status":  true,
		"message": message,
	}
	for k, v := range data {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  false,
		"message": message,
	})
}

// JSONFail maps a service error onto its HTTP status and the failure envelope.
func JSONFail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch errs.KindOf(err) {
	case errs.KindValidation:
		status = fiber.StatusBadRequest
	case errs.KindBusiness:
		status = fiber.StatusUnprocessableEntity
	case errs.KindNotFound:
		status = fiber.StatusNotFound
	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
			"error":  err,
		}).Error("request failed")
	}
	return JSONError(c, status, errs.Message(err))
}
