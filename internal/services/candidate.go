package services

import (
	"context"
	"errors"
	"time"

	"github.com/developia-II/candidate-tracker-backend/internal/apperror"
	"github.com/developia-II/candidate-tracker-backend/internal/metrics"
	"github.com/developia-II/candidate-tracker-backend/internal/models"
	"github.com/developia-II/candidate-tracker-backend/internal/storage"
	"github.com/developia-II/candidate-tracker-backend/utils"
	"github.com/sirupsen/logrus"
)

type CandidateService struct {
	repo           CandidateRepository
	files          storage.FileStore
	metrics        *metrics.Metrics
	log            logrus.FieldLogger
	maxResumeBytes int
	now            func() time.Time
}

func NewCandidateService(repo CandidateRepository, files storage.FileStore, m *metrics.Metrics, log logrus.FieldLogger, maxResumeBytes int) *CandidateService {
	return &CandidateService{
		repo:           repo,
		files:          files,
		metrics:        m,
		log:            log,
		maxResumeBytes: maxResumeBytes,
		now:            time.Now,
	}
}

func (s *CandidateService) List(ctx context.Context) (candidates []models.Candidate, err error) {
	defer func() { observe(s.metrics, s.log, "list_candidates", err) }()

	candidates, err = s.repo.List(ctx)
	if err != nil {
		return nil, toAppError(err)
	}
	return candidates, nil
}

// Create validates the form, stores the optional resume and inserts the
// candidate. Nothing is written when validation fails, and a stored resume is
// removed again if the insert does not go through.
func (s *CandidateService) Create(ctx context.Context, req models.CandidateRequest, resume *storage.Upload) (candidate *models.Candidate, err error) {
	defer func() { observe(s.metrics, s.log, "create_candidate", err) }()

	if err := utils.Validate.Struct(req); err != nil {
		return nil, apperror.Validation(apperror.MsgNameEmailRequired)
	}

	if resume != nil {
		if err := storage.ValidatePDF(*resume, s.maxResumeBytes); err != nil {
			s.metrics.ObserveUpload(s.files.Backend(), "rejected")
			if errors.Is(err, storage.ErrTooLarge) {
				return nil, apperror.Validation(apperror.MsgResumeTooLarge)
			}
			return nil, apperror.Validation(apperror.MsgPDFOnly)
		}
	}

	candidate = &models.Candidate{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	var key string
	if resume != nil {
		key, err = s.files.Store(ctx, *resume)
		if err != nil {
			s.metrics.ObserveUpload(s.files.Backend(), "error")
			return nil, apperror.Internal(err)
		}
		s.metrics.ObserveUpload(s.files.Backend(), "ok")
		url := s.files.Resolve(key)
		candidate.Resume = &url
	}

	if err := s.repo.Insert(ctx, candidate); err != nil {
		if key != "" {
			s.discardResume(key)
		}
		return nil, toAppError(err)
	}

	s.log.WithFields(logrus.Fields{
		"candidate": candidate.ID.Hex(),
		"resume":    key != "",
	}).Info("candidate created")
	return candidate, nil
}

// discardResume runs detached from the request context so a cancelled request
// still cleans up after itself.
func (s *CandidateService) discardResume(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.files.Remove(ctx, key); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("failed to remove orphaned resume")
	}
}

// Get treats a malformed id exactly like an unknown one.
func (s *CandidateService) Get(ctx context.Context, id string) (candidate *models.Candidate, err error) {
	defer func() { observe(s.metrics, s.log, "get_candidate", err) }()

	oid, ok := parseID(id)
	if !ok {
		return nil, apperror.NotFound(apperror.MsgCandidateNotFound)
	}

	candidate, err = s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, toAppError(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound(apperror.MsgCandidateNotFound)
	}
	return candidate, nil
}
