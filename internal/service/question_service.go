package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/qboard/internal/metrics"
	"github.com/stemsi/qboard/internal/model"
	"github.com/stemsi/qboard/internal/repository"
)

// QuestionService loads and saves the QuestionSet through a repository.
type QuestionService struct {
	repo repository.QuestionSetRepository
	log  zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(repo repository.QuestionSetRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		repo: repo,
		log:  log.With().Str("component", "question_service").Str("store", repo.Driver()).Logger(),
	}
}

// Load returns the stored set, or an empty set on first run.
func (s *QuestionService) Load(ctx context.Context) (model.QuestionSet, error) {
	start := time.Now()
	set, err := s.repo.Load(ctx)
	s.observe("load", start, err)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load questions")
		return model.QuestionSet{}, err
	}
	metrics.StoredQuestions.Set(float64(set.Len()))
	return set, nil
}

// Save replaces the stored set.
func (s *QuestionService) Save(ctx context.Context, set model.QuestionSet) error {
	start := time.Now()
	err := s.repo.Save(ctx, set)
	s.observe("save", start, err)
	if err != nil {
		s.log.Error().Err(err).Int("questions", set.Len()).Msg("failed to save questions")
		return err
	}
	metrics.StoredQuestions.Set(float64(set.Len()))
	s.log.Debug().Int("questions", set.Len()).Msg("questions saved")
	return nil
}

func (s *QuestionService) observe(op string, start time.Time, err error) {
	driver := s.repo.Driver()
	metrics.StoreOperationDuration.WithLabelValues(driver, op).Observe(time.Since(start).Seconds())
	result := metrics.ResultOK
	if err != nil {
		result = metrics.ResultError
	}
	metrics.StoreOperationsTotal.WithLabelValues(driver, op, result).Inc()
}
