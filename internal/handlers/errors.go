package handlers

import (
	"errors"

	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"github.com/developia-II/candidate-tracker-backend/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorHandler renders every error as {"msg": ...}. Server-side failures are
// logged with their cause and answered with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Code >= fiber.StatusInternalServerError {
			logFailure(c, err)
		}
		return utils.ErrorResponse(c, appErr.Code, appErr.Message)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusRequestEntityTooLarge:
			// same answer the service gives for a resume just over the limit
			return utils.ErrorResponse(c, fiber.StatusBadRequest, apperror.MsgResumeTooLarge)
		case fe.Code >= fiber.StatusInternalServerError:
			logFailure(c, err)
			return utils.ErrorResponse(c, fe.Code, apperror.MsgServerError)
		default:
			return utils.ErrorResponse(c, fe.Code, fe.Message)
		}
	}

	logFailure(c, err)
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, apperror.MsgServerError)
}

func logFailure(c *fiber.Ctx, err error) {
	utils.Log.WithFields(logrus.Fields{
		"method":    c.Method(),
		"path":      c.Path(),
		"requestId": c.Locals("requestid"),
		"kind":      apperror.KindOf(err),
	}).WithError(err).Error("request failed")
}
