package services

import (
	"context"
	"errors"

	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"github.com/developia-II/candidate-tracker-backend/internal/metrics"
	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CandidateRepository interface {
	List(ctx context.Context) ([]models.Candidate, error)
	Insert(ctx context.Context, candidate *models.Candidate) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Candidate, error)
	Exists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type FeedbackRepository interface {
	Insert(ctx context.Context, feedback *models.Feedback) error
	ListByCandidate(ctx context.Context, candidateID primitive.ObjectID) ([]models.Feedback, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// toAppError keeps classified errors as they are and treats anything else as internal.
func toAppError(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(apperror.KindOf(err))
}

func observe(m *metrics.Metrics, log logrus.FieldLogger, op string, err error) {
	m.ObserveOperation(op, outcome(err))

	if err == nil {
		return
	}
	switch apperror.KindOf(err) {
	case apperror.KindInternal, apperror.KindStorageUnavailable:
		log.WithError(err).WithField("operation", op).Error("operation failed")
	}
}

func parseID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
