package services_test

import (
	"context"
	"testing"

	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"github.com/developia-II/candidate-tracker-backend/internal/metrics"
	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"github.com/developia-II/candidate-tracker-backend/internal/services"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newFeedbackService(candidates *MockCandidateRepo, feedback *MockFeedbackRepo) *services.FeedbackService {
	log, _ := test.NewNullLogger()
	return services.NewFeedbackService(candidates, feedback, metrics.New(), log)
}

func TestAddFeedback(t *testing.T) {
	ctx := context.Background()
	cid := primitive.NewObjectID()

	t.Run("Should accept every rating from 1 to 5", func(t *testing.T) {
		candidates, feedback := new(MockCandidateRepo), new(MockFeedbackRepo)
		svc := newFeedbackService(candidates, feedback)
		candidates.On("Exists", ctx, cid).Return(true, nil)
		feedback.On("Insert", ctx, mock.AnythingOfType("*models.Feedback")).Return(nil)

		for rating := 1; rating <= 5; rating++ {
			fb, err := svc.Add(ctx, cid.Hex(), models.FeedbackRequest{Comment: "Strong analytical skills", Rating: rating})
			require.NoError(t, err)
			assert.Equal(t, rating, fb.Rating)
			assert.Equal(t, cid, fb.CandidateID)
		}
		feedback.AssertNumberOfCalls(t, "Insert", 5)
	})

	t.Run("Should reject ratings outside 1..5", func(t *testing.T) {
		candidates, feedback := new(MockCandidateRepo), new(MockFeedbackRepo)
		svc := newFeedbackService(candidates, feedback)
		candidates.On("Exists", ctx, cid).Return(true, nil)

		for _, rating := range []int{0, 6, -1} {
			_, err := svc.Add(ctx, cid.Hex(), models.FeedbackRequest{Comment: "ok", Rating: rating})
			require.Error(t, err)
			appErr := err.(*apperror.AppError)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Equal(t, apperror.MsgRatingRange, appErr.Message)
		}
		feedback.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Should require a comment", func(t *testing.T) {
		candidates, feedback := new(MockCandidateRepo), new(MockFeedbackRepo)
		svc := newFeedbackService(candidates, feedback)
		candidates.On("Exists", ctx, cid).Return(true, nil)

		_, err := svc.Add(ctx, cid.Hex(), models.FeedbackRequest{Comment: "  ", Rating: 3})
		require.Error(t, err)
		assert.Equal(t, apperror.MsgCommentRequired, err.(*apperror.AppError).Message)
	})

	t.Run("Should report unknown candidates before validating", func(t *testing.T) {
		candidates, feedback := new(MockCandidateRepo), new(MockFeedbackRepo)
		svc := newFeedbackService(candidates, feedback)
		candidates.On("Exists", ctx, cid).Return(false, nil)

		_, err := svc.Add(ctx, cid.Hex(), models.FeedbackRequest{Comment: "ok", Rating: 9})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))

		_, err = svc.Add(ctx, "garbage", models.FeedbackRequest{Comment: "ok", Rating: 3})
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		feedback.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}

func TestListFeedback(t *testing.T) {
	ctx := context.Background()
	cid := primitive.NewObjectID()

	t.Run("Should return entries for an existing candidate", func(t *testing.T) {
		candidates, feedback := new(MockCandidateRepo), new(MockFeedbackRepo)
		svc := newFeedbackService(candidates, feedback)
		candidates.On("Exists", ctx, cid).Return(true, nil)
		feedback.On("ListByCandidate", ctx, cid).Return([]models.Feedback{{Comment: "newest"}, {Comment: "oldest"}}, nil)

		got, err := svc.List(ctx, cid.Hex())
		require.NoError(t, err)
		assert.Equal(t, "newest", got[0].Comment)
	})

	t.Run("Should report unknown candidates", func(t *testing.T) {
		candidates, feedback := new(MockCandidateRepo), new(MockFeedbackRepo)
		svc := newFeedbackService(candidates, feedback)
		candidates.On("Exists", ctx, cid).Return(false, nil)

		_, err := svc.List(ctx, cid.Hex())
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
		feedback.AssertNotCalled(t, "ListByCandidate", mock.Anything, mock.Anything)
	})
}

func TestDeleteFeedback(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	candidates, feedback := new(MockCandidateRepo), new(MockFeedbackRepo)
	svc := newFeedbackService(candidates, feedback)
	feedback.On("Delete", ctx, id).Return(true, nil).Once()
	feedback.On("Delete", ctx, id).Return(false, nil).Once()

	t.Run("Should delete once then report not found", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, id.Hex()))

		err := svc.Delete(ctx, id.Hex())
		require.Error(t, err)
		assert.Equal(t, apperror.MsgFeedbackNotFound, err.(*apperror.AppError).Message)
	})

	t.Run("Should treat malformed ids as not found", func(t *testing.T) {
		err := svc.Delete(ctx, "123")
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}
