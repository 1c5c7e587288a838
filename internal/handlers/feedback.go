package handlers

import (
	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"github.com/developia-II/candidate-tracker-backend/internal/services"
	"github.com/developia-II/candidate-tracker-backend/utils"
	"github.com/gofiber/fiber/v2"
)

type FeedbackHandler struct {
	svc *services.FeedbackService
}

func NewFeedbackHandler(svc *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{svc: svc}
}

// SubmitFeedback handles POST /api/feedback/:candidateId.
func (h *FeedbackHandler) SubmitFeedback(c *fiber.Ctx) error {
	var req models.FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperror.Validation(apperror.MsgInvalidBody)
	}

	feedback, err := h.svc.Add(c.UserContext(), c.Params("candidateId"), req)
	if err != nil {
		return err
	}
	return c.JSON(feedback)
}

// GetFeedback handles GET /api/feedback/:candidateId.
func (h *FeedbackHandler) GetFeedback(c *fiber.Ctx) error {
	feedback, err := h.svc.List(c.UserContext(), c.Params("candidateId"))
	if err != nil {
		return err
	}
	return c.JSON(feedback)
}

// DeleteFeedback handles DELETE /api/feedback/:id.
func (h *FeedbackHandler) DeleteFeedback(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Feedback removed")
}
