package database

import (
	"context"
	"time"

	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FeedbackStore struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewFeedbackStore(db *mongo.Database, timeout time.Duration) *FeedbackStore {
	return &FeedbackStore{
		col:     db.Collection(FeedbackCollection),
		timeout: timeout,
	}
}

func (s *FeedbackStore) Insert(ctx context.Context, feedback *models.Feedback) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if feedback.ID.IsZero() {
		feedback.ID = primitive.NewObjectID()
	}

	_, err := s.col.InsertOne(ctx, feedback)
	return classify(err)
}

// ListByCandidate returns the candidate's feedback, newest first. Entries created
// within the same millisecond fall back to id order, which follows insertion.
func (s *FeedbackStore) ListByCandidate(ctx context.Context, candidateID primitive.ObjectID) ([]models.Feedback, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{"candidateId": candidateID}, opts)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	feedback := make([]models.Feedback, 0)
	if err := cursor.All(ctx, &feedback); err != nil {
		return nil, classify(err)
	}
	return feedback, nil
}

// Delete removes one entry and reports whether it existed. Two concurrent deletes
// of the same id see exactly one true.
func (s *FeedbackStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, classify(err)
	}
	return res.DeletedCount > 0, nil
}
