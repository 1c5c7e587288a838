package services

import (
	"context"
	"time"

	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"github.com/developia-II/candidate-tracker-backend/internal/metrics"
	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"github.com/developia-II/candidate-tracker-backend/utils"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FeedbackService struct {
	candidates CandidateRepository
	feedback   FeedbackRepository
	metrics    *metrics.Metrics
	log        logrus.FieldLogger
	now        func() time.Time
}

func NewFeedbackService(candidates CandidateRepository, feedback FeedbackRepository, m *metrics.Metrics, log logrus.FieldLogger) *FeedbackService {
	return &FeedbackService{
		candidates: candidates,
		feedback:   feedback,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

// Add checks that the candidate exists before looking at the payload, so an
// unknown candidate is always reported as not found.
func (s *FeedbackService) Add(ctx context.Context, candidateID string, req models.FeedbackRequest) (feedback *models.Feedback, err error) {
	defer func() { observe(s.metrics, s.log, "add_feedback", err) }()

	cid, err := s.requireCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	if err := validateFeedback(req); err != nil {
		return nil, err
	}

	feedback = &models.Feedback{
		CandidateID: cid,
		Comment:     req.Comment,
		Rating:      req.Rating,
		CreatedAt:   s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.feedback.Insert(ctx, feedback); err != nil {
		return nil, toAppError(err)
	}
	return feedback, nil
}

func (s *FeedbackService) List(ctx context.Context, candidateID string) (feedback []models.Feedback, err error) {
	defer func() { observe(s.metrics, s.log, "list_feedback", err) }()

	cid, err := s.requireCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	feedback, err = s.feedback.ListByCandidate(ctx, cid)
	if err != nil {
		return nil, toAppError(err)
	}
	return feedback, nil
}

// Delete is not idempotent: deleting an id twice yields NotFound
// the second time.
func (s *FeedbackService) Delete(ctx context.Context, id string) (err error) {
	defer func() { observe(s.metrics, s.log, "delete_feedback", err) }()

	oid, ok := parseID(id)
	if !ok {
		return apperror.NotFound(apperror.MsgFeedbackNotFound)
	}

	deleted, err := s.feedback.Delete(ctx, oid)
	if err != nil {
		return toAppError(err)
	}
	if !deleted {
		return apperror.NotFound(apperror.MsgFeedbackNotFound)
	}
	return nil
}

func (s *FeedbackService) requireCandidate(ctx context.Context, candidateID string) (primitive.ObjectID, error) {
	cid, ok := parseID(candidateID)
	if !ok {
		return primitive.NilObjectID, apperror.NotFound(apperror.MsgCandidateNotFound)
	}

	exists, err := s.candidates.Exists(ctx, cid)
	if err != nil {
		return primitive.NilObjectID, toAppError(err)
	}
	if !exists {
		return primitive.NilObjectID, apperror.NotFound(apperror.MsgCandidateNotFound)
	}
	return cid, nil
}

func validateFeedback(req models.FeedbackRequest) error {
	err := utils.Validate.Struct(req)
	if err == nil {
		return nil
	}
	for _, field := range utils.FailedFields(err) {
		if field == "Rating" {
			return apperror.Validation(apperror.MsgRatingRange)
		}
	}
	return apperror.Validation(apperror.MsgCommentRequired)
}
