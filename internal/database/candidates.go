package database

import (
	"context"
	"errors"
	"time"

	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CandidateStore struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewCandidateStore(db *mongo.Database, timeout time.Duration) *CandidateStore {
	return &CandidateStore{
		col:     db.Collection(CandidatesCollection),
		timeout: timeout,
	}
}

// List returns every candidate, newest first.
func (s *CandidateStore) List(ctx context.Context) ([]models.Candidate, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, classify(err)
	}
	defer cursor.Close(ctx)

	candidates := make([]models.Candidate, 0)
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, classify(err)
	}
	return candidates, nil
}

// Insert assigns an id when the caller left it empty and persists the candidate.
// A clash on the unique email index is reported as DuplicateEmail.
func (s *CandidateStore) Insert(ctx context.Context, candidate *models.Candidate) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if candidate.ID.IsZero() {
		candidate.ID = primitive.NewObjectID()
	}

	if _, err := s.col.InsertOne(ctx, candidate); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.DuplicateEmail(err)
		}
		return classify(err)
	}
	return nil
}

// FindByID returns nil, nil when no candidate has the id.
func (s *CandidateStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Candidate, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var candidate models.Candidate
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&candidate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &candidate, nil
}

func (s *CandidateStore) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	n, err := s.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, classify(err)
	}
	return n > 0, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
