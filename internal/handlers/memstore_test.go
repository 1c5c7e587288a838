package handlers_test

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore stands in for Mongo: it enforces the unique email index and sorts
// the way the real queries do.
type memStore struct {
	mu         sync.Mutex
	candidates map[primitive.ObjectID]models.Candidate
	feedback   map[primitive.ObjectID]models.Feedback
	failList   bool
}

func newMemStore() *memStore {
	return &memStore{
		candidates: map[primitive.ObjectID]models.Candidate{},
		feedback:   map[primitive.ObjectID]models.Feedback{},
	}
}

type memCandidates struct{ *memStore }
type memFeedback struct{ *memStore }

func (s memCandidates) List(context.Context) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failList {
		return nil, apperror.StorageUnavailable(errors.New("server selection timeout"))
	}
	out := make([]models.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (s memCandidates) Insert(_ context.Context, c *models.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.candidates {
		if existing.Email == c.Email {
			return apperror.DuplicateEmail(errors.New("E11000 duplicate key error"))
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	s.candidates[c.ID] = *c
	return nil
}

func (s memCandidates) FindByID(_ context.Context, id primitive.ObjectID) (*models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.candidates[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s memCandidates) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.candidates[id]
	return ok, nil
}

func (s memFeedback) Insert(_ context.Context, f *models.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	s.feedback[f.ID] = *f
	return nil
}

func (s memFeedback) ListByCandidate(_ context.Context, cid primitive.ObjectID) ([]models.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Feedback, 0)
	for _, f := range s.feedback {
		if f.CandidateID == cid {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (s memFeedback) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.feedback[id]; !ok {
		return false, nil
	}
	delete(s.feedback, id)
	return true, nil
}

func (s *memStore) feedbackCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.feedback)
}

func (s *memStore) candidateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.candidates)
}
