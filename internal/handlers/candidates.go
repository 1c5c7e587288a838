package handlers

import (
	"io"

	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"github.com/developia-II/candidate-tracker-backend/internal/services"
	"github.com/developia-II/candidate-tracker-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

type CandidateHandler struct {
	svc            *services.CandidateService
	maxResumeBytes int
}

func NewCandidateHandler(svc *services.CandidateService, maxResumeBytes int) *CandidateHandler {
	return &CandidateHandler{svc: svc, maxResumeBytes: maxResumeBytes}
}

// GetCandidates handles GET /api/candidates.
func (h *CandidateHandler) GetCandidates(c *fiber.Ctx) error {
	candidates, err := h.svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(candidates)
}

// CreateCandidate handles POST /api/candidates (multipart: name, email, phone, resume).
func (h *CandidateHandler) CreateCandidate(c *fiber.Ctx) error {
	var req models.CandidateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperror.Validation(apperror.MsgInvalidBody)
		}
	}

	resume, err := h.resumeUpload(c)
	if err != nil {
		return err
	}

	candidate, err := h.svc.Create(c.UserContext(), req, resume)
	if err != nil {
		return err
	}
	return c.JSON(candidate)
}

// GetCandidate handles GET /api/candidates/:id.
func (h *CandidateHandler) GetCandidate(c *fiber.Ctx) error {
	candidate, err := h.svc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(candidate)
}

// resumeUpload returns nil when the request carries no file in the "resume" field.
func (h *CandidateHandler) resumeUpload(c *fiber.Ctx) (*storage.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	files := form.File["resume"]
	if len(files) == 0 {
		return nil, nil
	}
	fh := files[0]
	if fh.Filename == "" && fh.Size == 0 {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer f.Close()

	// one byte over the limit is enough for the service to reject it
	data, err := io.ReadAll(io.LimitReader(f, int64(h.maxResumeBytes)+1))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &storage.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
